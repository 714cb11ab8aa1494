package tracker

import (
	"context"
	"log/slog"

	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
)

// NewCatalogProvider builds the catalog gateway from config. A mirror that
// fails to initialize is logged and skipped.
func NewCatalogProvider(ctx context.Context, cfg Config) *tarkovdev.Provider {
	var mirror tarkovdev.Mirror
	if cfg.Mirror.Enabled() {
		m, err := tarkovdev.NewS3Mirror(ctx, tarkovdev.MirrorConfig{
			Endpoint:  cfg.Mirror.Endpoint,
			Region:    cfg.Mirror.Region,
			Bucket:    cfg.Mirror.Bucket,
			Prefix:    cfg.Mirror.Prefix,
			AccessKey: cfg.Mirror.AccessKey,
			SecretKey: cfg.Mirror.SecretKey,
		})
		if err != nil {
			slog.Warn("Catalog mirror disabled", slog.String("type", "cat"), slog.String("error", err.Error()))
		} else {
			mirror = m
		}
	}

	return tarkovdev.NewProvider(tarkovdev.Config{
		Endpoint: cfg.Catalog.Endpoint,
		WikiURL:  cfg.Catalog.WikiURL,
		CacheDir: cfg.Catalog.CacheDir,
		TTL:      cfg.Catalog.TTL.Std(),
		Timeout:  cfg.Catalog.Timeout.Std(),
	}, mirror)
}
