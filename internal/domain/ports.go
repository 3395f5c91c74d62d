package domain

import "context"

// ReviewRepository persists reviews. Implementations assign IDs on Insert and
// return List results ordered by created_at DESC, id DESC.
type ReviewRepository interface {
	// Write path
	Insert(ctx context.Context, r Review) (Review, error)

	// Read paths
	List(ctx context.Context, filter *Sentiment) ([]Review, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type Classifier interface {
	Classify(text string) Sentiment
}
