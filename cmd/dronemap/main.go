package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"dronemap/internal/app"
	"dronemap/internal/config"
	"dronemap/internal/logger"
	"dronemap/internal/repository/manifest"
	"dronemap/internal/service"
	"dronemap/internal/spatial"
	"dronemap/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded
	// if present).
	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	// Payload storage: local content directory by default, S3-compatible
	// bucket when configured.
	var payloads storage.Storage
	switch cfg.StorageBackend {
	case "minio":
		payloads, err = storage.NewMinIO(cfg.MinIO)
	default:
		payloads, err = storage.NewLocal(cfg.ContentDir)
	}
	if err != nil {
		logg.Fatal("failed to initialize payload storage", "backend", cfg.StorageBackend, "error", err)
	}

	// The manifest document backs both the media collection and the
	// grouping registry; missing or corrupt manifests start empty.
	store, err := manifest.Open(cfg.ManifestPath, logg)
	if err != nil {
		logg.Fatal("failed to open manifest", "path", cfg.ManifestPath, "error", err)
	}

	mediaSvc := service.NewMediaService(payloads, store, store, logg, cfg.ThumbnailMaxPx)
	groupingSvc := service.NewGroupingService(store, store, logg)

	ctx := context.Background()
	if err := groupingSvc.EnsureDefaults(ctx); err != nil {
		logg.Fatal("failed to seed default grouping entities", "error", err)
	}

	resolver := spatial.NewResolver(spatial.Metric(cfg.Lookup.Metric), cfg.Lookup.Tolerance)
	session := app.NewSession(mediaSvc, groupingSvc, resolver, cfg.Viewer.Wrap, logg)

	stats, err := session.Stats(ctx)
	if err != nil {
		logg.Fatal("failed to read collection stats", "error", err)
	}
	center, err := session.MapCenter(ctx)
	if err != nil {
		logg.Fatal("failed to compute map center", "error", err)
	}

	logg.Info("dronemap session ready",
		"manifest", cfg.ManifestPath,
		"storage", cfg.StorageBackend,
		"media", stats.Total, "images", stats.Images, "videos", stats.Videos,
		"center_lat", center.Lat, "center_lon", center.Lon, "zoom", center.Zoom,
	)
}
