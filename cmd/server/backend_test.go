package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/config"
	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

func TestOpenStorage_Memory(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		seed      bool
		wantCount int
	}{
		{seed: true, wantCount: 5},
		{seed: false, wantCount: 0},
	}
	for _, tt := range tests {
		cfg := config.Config{Backend: config.BackendMemory, Seed: tt.seed}
		s, closeStore, err := openStorage(ctx, cfg)
		require.NoError(t, err)
		defer closeStore()

		surahs, err := s.ListSurahs(ctx)
		require.NoError(t, err)
		assert.Len(t, surahs, tt.wantCount, "seed=%v", tt.seed)
	}
}

func TestOpenStorage_SQLSeedsOnlyEmptyDatabase(t *testing.T) {
	// GIVEN: an empty SQLite database
	ctx := context.Background()
	cfg := config.Config{Backend: config.BackendSQL, DatabaseURL: ":memory:", Seed: true}

	// WHEN: the backend is opened
	s, closeStore, err := openStorage(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()

	// THEN: the sample data is there
	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalEmployees)
}

func TestOpenStorage_ProxyOverlaysFixtures(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Backend: config.BackendProxy, Seed: true}

	s, closeStore, err := openStorage(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()

	// Quran writes hit the read-only proxy
	_, err = s.CreateSurah(ctx, model.Surah{Number: 6, Name: "الأنعام", EnglishName: "Al-An'am", VersesCount: 165})
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	// the rest is the seeded fixture store
	topics, err := s.ListTopics(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, topics)
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	_, _, err := openStorage(context.Background(), config.Config{Backend: "redis"})
	assert.ErrorContains(t, err, "redis")
}
