package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_intake/internal/domain"
	"review_intake/internal/storage"
)

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")

	repo, closer, err := storage.Open(storage.Options{Driver: storage.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })

	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))
	_, err = repo.Insert(ctx, domain.Review{Text: "x", Sentiment: domain.SentimentNeutral, CreatedAt: "2024-05-01T12:00:00.000000+00:00"})
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := storage.Open(storage.Options{Driver: "postgres"})
	assert.ErrorContains(t, err, "unknown store driver")
}
