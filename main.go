package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apiv1 "github.com/Krishna1412004/product-recommendation-app/internal/api/v1"
	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
	"github.com/Krishna1412004/product-recommendation-app/internal/db"
	"github.com/Krishna1412004/product-recommendation-app/internal/recommend"
	"github.com/Krishna1412004/product-recommendation-app/internal/service"
	"github.com/Krishna1412004/product-recommendation-app/pkg/config"
	"github.com/Krishna1412004/product-recommendation-app/pkg/middleware"
)

func main() {
	cfg := config.Load()
	log := logrus.New()

	store, err := catalog.Load(cfg.DataPath, log)
	if err != nil {
		// Keep serving: /test reports data_loaded=false and the data
		// endpoints answer 503 until the file is fixed and the process
		// restarted.
		log.WithError(err).Error("catalog load failed, serving in degraded mode")
		store = catalog.Unloaded()
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	describer := service.NewDescriptionGenerator(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, httpClient, log)

	recommender := buildRecommender(cfg, store, describer, httpClient, log)

	r := gin.Default()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.WithError(err).Fatal("failed to configure trusted proxies")
	}
	r.Use(middleware.CORS(), middleware.RequestID())

	h := apiv1.NewHandler(store, recommender, log, cfg.RequestTimeout)
	apiv1.RegisterRoutes(r, h)

	log.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"recommender": cfg.Recommender,
		"data_loaded": store.Loaded(),
	}).Info("starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// buildRecommender wires the configured strategy. The vector strategy needs
// a reachable database; when it is not, the keyword fallback takes over so
// the API stays up.
func buildRecommender(cfg *config.Config, store *catalog.Store, describer recommend.Describer, httpClient *http.Client, log *logrus.Logger) recommend.Recommender {
	if cfg.Recommender != config.RecommenderVector {
		return recommend.NewKeyword(store, describer)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Error("vector recommender unavailable, falling back to keyword search")
		return recommend.NewKeyword(store, describer)
	}

	embedder := service.NewEmbeddingClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, httpClient)
	return recommend.NewVector(store, embedder, db.NewVectorIndex(pool), describer, log)
}
