package app

import (
	"context"

	"review_intake/internal/domain"
)

// List returns reviews newest first. An empty filter means all sentiments.
func (s *ReviewService) List(ctx context.Context, filter string) ([]domain.Review, error) {
	var f *domain.Sentiment
	if filter != "" {
		v, err := domain.ParseSentiment(filter)
		if err != nil {
			return nil, err
		}
		f = &v
	}

	rs, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, domain.Storage("list reviews", err)
	}
	if rs == nil {
		rs = []domain.Review{}
	}
	return rs, nil
}

// Health is a liveness probe and never touches the store.
func (s *ReviewService) Health(context.Context) domain.Health {
	return domain.Health{Status: "ok", Message: "ok"}
}

// Ready reports whether the store is reachable.
func (s *ReviewService) Ready(ctx context.Context) error {
	return domain.Storage("ping", s.repo.Ping(ctx))
}
