package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"review_intake/internal/adapters/observability"
	"review_intake/internal/domain"
)

var _ domain.ReviewRepository = (*Repo)(nil)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Insert(ctx context.Context, rv domain.Review) (out domain.Review, err error) {
	start := time.Now()
	defer func() { observability.ObserveStore("mysql", "insert", err, time.Since(start)) }()

	res, err := r.db.ExecContext(ctx, insertReviewSQL, rv.Text, string(rv.Sentiment), rv.CreatedAt)
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

func (r *Repo) List(ctx context.Context, filter *domain.Sentiment) (out []domain.Review, err error) {
	start := time.Now()
	defer func() { observability.ObserveStore("mysql", "list", err, time.Since(start)) }()

	var rows *sql.Rows
	if filter != nil {
		rows, err = r.db.QueryContext(ctx, listReviewsBySentimentSQL, string(*filter))
	} else {
		rows, err = r.db.QueryContext(ctx, listReviewsSQL)
	}
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

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
