package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"review_intake/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []domain.Review
	failErr error
	pingErr error
}

func (f *fakeRepo) Insert(ctx context.Context, r domain.Review) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return domain.Review{}, f.failErr
	}
	f.nextID++
	r.ID = f.nextID
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeRepo) List(ctx context.Context, filter *domain.Sentiment) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []domain.Review
	for _, r := range f.rows {
		if filter == nil || r.Sentiment == *filter {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.pingErr }

var errDiskFull = errors.New("disk I/O error")
