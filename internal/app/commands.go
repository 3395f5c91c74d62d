package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_intake/internal/domain"
)

type ReviewService struct {
	repo  domain.ReviewRepository
	cls   domain.Classifier
	clock clockwork.Clock
}

// NewReviewService wires the service. A nil clock means the real clock.
func NewReviewService(r domain.ReviewRepository, c domain.Classifier, clock clockwork.Clock) *ReviewService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ReviewService{repo: r, cls: c, clock: clock}
}

// Create trims text, classifies it and persists the review. Blank text is a
// ValidationError; any repository failure comes back as a StorageError.
func (s *ReviewService) Create(ctx context.Context, text string) (domain.Review, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Review{}, domain.TextEmpty()
	}

	rv := domain.Review{
		Text:      text,
		Sentiment: s.cls.Classify(text),
		CreatedAt: domain.FormatCreatedAt(s.clock.Now()),
	}
	out, err := s.repo.Insert(ctx, rv)
	if err != nil {
		return domain.Review{}, domain.Storage("insert review", err)
	}

	log.Debug().Int64("id", out.ID).Str("sentiment", string(out.Sentiment)).Msg("review created")
	return out, nil
}

type IngestStats struct {
	Total       int // lines submitted to Create
	Skipped     int // blank lines, never submitted
	Failed      int
	BySentiment map[domain.Sentiment]int
}

// Ingest submits every non-empty line of r through Create, with at most
// workers calls in flight. It stops reading when ctx is cancelled.
func (s *ReviewService) Ingest(ctx context.Context, r io.Reader, workers int) (IngestStats, error) {
	if workers <= 0 {
		workers = 1
	}
	stats := IngestStats{BySentiment: map[domain.Sentiment]int{}}
	var mu sync.Mutex

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var readErr error
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			mu.Lock()
			stats.Skipped++
			mu.Unlock()
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			readErr = err
			break
		}

		mu.Lock()
		stats.Total++
		mu.Unlock()

		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			defer sem.Release(1)

			rv, err := s.Create(ctx, text)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				log.Warn().Err(err).Msg("ingest review failed")
				return
			}
			stats.BySentiment[rv.Sentiment]++
		}(line)
	}
	wg.Wait()

	if readErr == nil {
		if err := sc.Err(); err != nil {
			readErr = fmt.Errorf("read input: %w", err)
		}
	}
	return stats, readErr
}
