package sqlite

import (
	"context"
	"fmt"
	"time"

	"review_intake/internal/adapters/observability"
	"review_intake/internal/domain"
)

const driverName = "sqlite"

// Compile-time interface satisfaction check.
var _ domain.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo is the SQLite implementation of domain.ReviewRepository.
type ReviewRepo struct {
	db *DB
}

func NewReviewRepo(db *DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Insert writes r in a single statement and returns it with the assigned ID.
func (r *ReviewRepo) Insert(ctx context.Context, rv domain.Review) (out domain.Review, err error) {
	defer observe("insert", time.Now(), &err)

	res, err := r.db.Writer.ExecContext(ctx, insertReviewSQL, rv.Text, string(rv.Sentiment), rv.CreatedAt)
	if err != nil {
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, fmt.Errorf("last insert id: %w", err)
	}
	rv.ID = id
	observability.ObserveReviewCreated(string(rv.Sentiment))
	return rv, nil
}

// List returns reviews ordered by created_at DESC, id DESC, optionally
// restricted to one sentiment.
func (r *ReviewRepo) List(ctx context.Context, filter *domain.Sentiment) (out []domain.Review, err error) {
	defer observe("list", time.Now(), &err)

	query, args := listReviewsSQL, []any(nil)
	if filter != nil {
		query, args = listReviewsBySentimentSQL, []any{string(*filter)}
	}

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		var sentiment string
		if err := rows.Scan(&rv.ID, &rv.Text, &sentiment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.Sentiment = domain.Sentiment(sentiment)
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}

func (r *ReviewRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.Reader.QueryRowContext(ctx, countReviewsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

func (r *ReviewRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }

func observe(op string, start time.Time, err *error) {
	observability.ObserveStore(driverName, op, *err, time.Since(start))
}
