// Package config reads the process configuration from environment variables,
// with a .env file autoloaded when present.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	RecommenderKeyword = "keyword"
	RecommenderVector  = "vector"
)

type Config struct {
	Port        string
	DataPath    string
	Recommender string

	DatabaseURL string

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	EmbeddingModel string

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	RequestTimeout time.Duration
}

// Load builds the configuration from the environment. Missing keys fall back
// to defaults suited to the demo deployment; a missing .env file is fine.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getenv("PORT", "8080"),
		DataPath:    getenv("DATA_PATH", "data/furniture_dataset.csv"),
		Recommender: getenv("RECOMMENDER", RecommenderKeyword),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingModel: getenv("EMBEDDING_MODEL", "text-embedding-3-small"),

		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMBaseURL: getenv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModel:   getenv("LLM_MODEL", "llama-3.1-8b-instant"),

		RequestTimeout: getduration("REQUEST_TIMEOUT", 15*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
