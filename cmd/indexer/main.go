// Command indexer loads the catalog, runs the schema migration and fills in
// missing product embeddings in pgvector. Run it once before switching the
// server to RECOMMENDER=vector, and again after catalog updates.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
	"github.com/Krishna1412004/product-recommendation-app/internal/db"
	"github.com/Krishna1412004/product-recommendation-app/internal/service"
	"github.com/Krishna1412004/product-recommendation-app/pkg/config"
)

func main() {
	cfg := config.Load()
	log := logrus.New()

	store, err := catalog.Load(cfg.DataPath, log)
	if err != nil {
		fmt.Printf("Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fmt.Printf("Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	index := db.NewVectorIndex(pool)
	indexed, err := index.Indexed(ctx)
	if err != nil {
		fmt.Printf("Failed to list indexed products: %v\n", err)
		os.Exit(1)
	}

	embedder := service.NewEmbeddingClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, &http.Client{Timeout: cfg.RequestTimeout})

	updated, failed := 0, 0
	for _, p := range store.All() {
		if indexed[p.UniqID] {
			continue
		}

		text := fmt.Sprintf("%s. %s", p.Title, p.Description)
		vector, err := embedder.Embed(ctx, text)
		if err != nil {
			log.WithError(err).WithField("uniq_id", p.UniqID).Warn("embedding failed, skipping")
			failed++
			continue
		}
		if err := index.Upsert(ctx, p, vector); err != nil {
			log.WithError(err).WithField("uniq_id", p.UniqID).Warn("upsert failed, skipping")
			failed++
			continue
		}
		updated++
	}

	fmt.Printf("Successfully indexed %d products (%d already indexed, %d failed)\n",
		updated, store.Len()-updated-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
