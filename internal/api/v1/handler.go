package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Krishna1412004/product-recommendation-app/internal/analytics"
	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
	"github.com/Krishna1412004/product-recommendation-app/internal/recommend"
	"github.com/Krishna1412004/product-recommendation-app/pkg/middleware"
)

// Handler serves the recommendation API. The store and recommender are
// injected at startup; a degraded (unloaded) store makes the data endpoints
// answer 503 instead of crashing.
type Handler struct {
	store       *catalog.Store
	recommender recommend.Recommender
	log         *logrus.Logger
	timeout     time.Duration
}

func NewHandler(store *catalog.Store, recommender recommend.Recommender, log *logrus.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Handler{store: store, recommender: recommender, log: log, timeout: timeout}
}

type recommendRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the AI Product Recommendation API"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Backend is working!",
		"data_loaded": h.store.Loaded(),
	})
}

func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	recs, err := h.recommender.Recommend(ctx, req.Prompt, recommend.DefaultLimit)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			h.fail(c, http.StatusServiceUnavailable, "Models or data not loaded correctly.", err)
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to retrieve recommendations.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (h *Handler) Analytics(c *gin.Context) {
	report, err := analytics.Aggregate(h.store)
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			h.fail(c, http.StatusServiceUnavailable, "Data not loaded correctly.", err)
			return
		}
		h.fail(c, http.StatusInternalServerError, "Failed to generate analytics.", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// fail logs the internal cause with the request id and answers the generic
// {"detail": ...} error body. The cause itself never reaches the client.
func (h *Handler) fail(c *gin.Context, status int, detail string, err error) {
	h.log.WithFields(logrus.Fields{
		"status":     status,
		"path":       c.FullPath(),
		"request_id": c.GetString(middleware.RequestIDKey),
	}).WithError(err).Error("request failed")
	c.JSON(status, gin.H{"detail": detail})
}
