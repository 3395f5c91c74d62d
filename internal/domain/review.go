package domain

import (
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Sentiments lists every valid label.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// ParseSentiment accepts only the exact lowercase labels.
func ParseSentiment(v string) (Sentiment, error) {
	s := Sentiment(v)
	if !s.Valid() {
		return "", InvalidSentiment(v)
	}
	return s, nil
}

// Review is immutable once the store has assigned its ID.
type Review struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt string    `json:"created_at"`
}

// FormatCreatedAt renders t as UTC ISO-8601 with microseconds and an explicit
// +00:00 offset. The width is fixed so string order equals time order.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000") + "+00:00"
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
