package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Krishna1412004/product-recommendation-app/internal/model"
)

const (
	defaultLLMModel = "llama-3.1-8b-instant"

	marketingSystemPrompt = "You are a creative marketing assistant. Write a short, engaging, and creative product description, in 2-3 sentences. Do not mention the price."
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DescriptionGenerator writes marketing copy for one product via an
// OpenAI-compatible chat completions endpoint. A missing API key or any
// request failure degrades to TemplateDescription, so Describe never fails a
// recommendation request.
type DescriptionGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     *logrus.Logger
}

func NewDescriptionGenerator(baseURL, apiKey, model string, client *http.Client, log *logrus.Logger) *DescriptionGenerator {
	if model == "" {
		model = defaultLLMModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DescriptionGenerator{baseURL: baseURL, apiKey: apiKey, model: model, client: client, log: log}
}

// TemplateDescription is the deterministic fallback description.
func TemplateDescription(p model.Product) string {
	return fmt.Sprintf("This is a %s from %s. It features %s construction in %s color.",
		p.Title, p.Brand, p.Material, p.Color)
}

func (g *DescriptionGenerator) Describe(ctx context.Context, p model.Product) string {
	if g.apiKey == "" {
		return TemplateDescription(p)
	}
	out, err := g.complete(ctx, p)
	if err != nil {
		g.log.WithError(err).WithField("uniq_id", p.UniqID).Warn("description generation failed, using template")
		return TemplateDescription(p)
	}
	return out
}

func (g *DescriptionGenerator) complete(ctx context.Context, p model.Product) (string, error) {
	prompt := fmt.Sprintf("Product Details:\nTitle: %s\nBrand: %s\nMaterial: %s\nColor: %s\nOriginal Description: %s",
		p.Title, p.Brand, p.Material, p.Color, p.Description)

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: marketingSystemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat API error: %s: %s", resp.Status, raw)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response generated")
	}
	return result.Choices[0].Message.Content, nil
}
