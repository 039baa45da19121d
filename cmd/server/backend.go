package main

import (
	"context"
	"fmt"
	"log"

	"github.com/warp/portal/config"
	"github.com/warp/portal/seed"
	"github.com/warp/portal/storage"
	"github.com/warp/portal/storage/memory"
	"github.com/warp/portal/storage/proxy"
	"github.com/warp/portal/storage/relational"
)

// openStorage builds the backend named by cfg.Backend. The returned func
// releases it.
func openStorage(ctx context.Context, cfg config.Config) (storage.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		s, err := fixture(ctx, cfg.Seed)
		return s, noop, err

	case config.BackendSQL:
		db, err := relational.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Seed {
			if err := seedIfEmpty(ctx, db); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return db, db.Close, nil

	case config.BackendProxy:
		quran, err := proxy.New(proxy.Config{
			BaseURL:       cfg.Quran.BaseURL,
			AudioBaseURL:  cfg.Quran.AudioBaseURL,
			TranslationID: cfg.Quran.TranslationID,
			ReciterID:     cfg.Quran.ReciterID,
			Timeout:       cfg.Quran.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		// Everything but Quran content is served from fixtures.
		base, err := fixture(ctx, cfg.Seed)
		if err != nil {
			return nil, nil, err
		}
		return storage.WithQuran(base, quran), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func fixture(ctx context.Context, seeded bool) (*memory.Store, error) {
	if !seeded {
		return memory.New(), nil
	}
	return memory.Seeded(ctx)
}

func seedIfEmpty(ctx context.Context, db *relational.Store) error {
	empty, err := db.Empty(ctx)
	if err != nil {
		return fmt.Errorf("inspect database: %w", err)
	}
	if !empty {
		return nil
	}
	log.Println("Empty database, loading sample data")
	return seed.Load(ctx, db, nil)
}
