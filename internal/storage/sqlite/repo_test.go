package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_intake/internal/adapters/observability"
	"review_intake/internal/domain"
)

const (
	t1 = "2024-05-01T12:00:00.000000+00:00"
	t2 = "2024-05-01T12:00:01.000000+00:00"
	t3 = "2024-05-01T12:00:02.500000+00:00"
)

func TestReviewRepo_InsertAssignsIncreasingIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	a, err := repo.Insert(ctx, makeReview("Отличная вещь", domain.SentimentPositive, t1))
	require.NoError(t, err)
	b, err := repo.Insert(ctx, makeReview("Ужасный сервис", domain.SentimentNegative, t2))
	require.NoError(t, err)

	assert.Positive(t, a.ID)
	assert.Greater(t, b.ID, a.ID)
	assert.Equal(t, "Отличная вещь", a.Text)
	assert.Equal(t, t1, a.CreatedAt)
}

func TestReviewRepo_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	// insert out of time order
	_, err := repo.Insert(ctx, makeReview("second", domain.SentimentNeutral, t2))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, makeReview("third", domain.SentimentNeutral, t3))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, makeReview("first", domain.SentimentNeutral, t1))
	require.NoError(t, err)

	out, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "third", out[0].Text)
	assert.Equal(t, "second", out[1].Text)
	assert.Equal(t, "first", out[2].Text)
}

func TestReviewRepo_ListTiesOrderedByIDDesc(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	a, err := repo.Insert(ctx, makeReview("a", domain.SentimentNeutral, t1))
	require.NoError(t, err)
	b, err := repo.Insert(ctx, makeReview("b", domain.SentimentNeutral, t1))
	require.NoError(t, err)

	for range 3 {
		out, err := repo.List(ctx, nil)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, b.ID, out[0].ID)
		assert.Equal(t, a.ID, out[1].ID)
	}
}

func TestReviewRepo_ListFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, makeReview("Отличная вещь", domain.SentimentPositive, t1))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, makeReview("Кошмар, полный брак", domain.SentimentNegative, t2))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, makeReview("Это лучший выбор", domain.SentimentPositive, t3))
	require.NoError(t, err)

	pos := domain.SentimentPositive
	out, err := repo.List(ctx, &pos)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, rv := range out {
		assert.Equal(t, domain.SentimentPositive, rv.Sentiment)
	}

	neutral := domain.SentimentNeutral
	out, err = repo.List(ctx, &neutral)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestReviewRepo_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.Insert(ctx, makeReview("x", domain.SentimentNeutral, t1))
	require.NoError(t, err)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestReviewRepo_ConcurrentInserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan int64, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rv, err := repo.Insert(ctx, makeReview("Отличная вещь", domain.SentimentPositive, t1))
			assert.NoError(t, err)
			ids <- rv.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), n)
}

func TestReviewRepo_FileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.db")
	ctx := context.Background()

	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db.Writer))
	first, err := NewReviewRepo(db).Insert(ctx, makeReview("Отличная вещь", domain.SentimentPositive, t1))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db.Writer))

	repo := NewReviewRepo(db)
	out, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, first, out[0])

	// AUTOINCREMENT keeps counting from the persisted sequence.
	second, err := repo.Insert(ctx, makeReview("Цвет синий", domain.SentimentNeutral, t2))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, path, db.Path())
}

func TestReviewRepo_Ping(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, NewReviewRepo(db).Ping(context.Background()))
}

func TestReviewRepo_ErrorsAfterClose(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	require.NoError(t, db.Close())

	// driver errors come back unprefixed; the service names the operation
	_, err := repo.Insert(context.Background(), makeReview("x", domain.SentimentNeutral, t1))
	assert.EqualError(t, err, "sql: database is closed")
	_, err = repo.List(context.Background(), nil)
	assert.EqualError(t, err, "sql: database is closed")
	assert.Error(t, repo.Ping(context.Background()))
}

func TestReviewRepo_InsertCountsCreatedReviews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepo(db)
	ctx := context.Background()
	created := observability.ReviewsCreated.WithLabelValues(string(domain.SentimentPositive))
	before := testutil.ToFloat64(created)

	_, err := repo.Insert(ctx, makeReview("Отличная вещь", domain.SentimentPositive, t1))
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(created))

	// failed inserts are not counted
	require.NoError(t, db.Close())
	_, err = repo.Insert(ctx, makeReview("Отличная вещь", domain.SentimentPositive, t2))
	require.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(created))
}
