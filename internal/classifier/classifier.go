// Package classifier assigns a sentiment label to review text by matching
// lowercase word stems as substrings. Positive stems are always tried before
// negative ones, so text containing both is positive.
package classifier

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"review_intake/internal/domain"
)

//go:embed keywords.json
var embeddedKeywords []byte

// Keywords is the versioned stem data. Order within each list is kept as loaded.
type Keywords struct {
	Version  string   `json:"version"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

func (k Keywords) validate() error {
	if len(k.Positive) == 0 {
		return errors.New("positive list is empty")
	}
	if len(k.Negative) == 0 {
		return errors.New("negative list is empty")
	}
	check := func(list string, stems []string) error {
		for i, s := range stems {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s[%d]: empty stem", list, i)
			}
			if strings.ToLower(s) != s {
				return fmt.Errorf("%s[%d]: stem %q is not lowercase", list, i, s)
			}
		}
		return nil
	}
	if err := check("positive", k.Positive); err != nil {
		return err
	}
	return check("negative", k.Negative)
}

// ParseKeywords decodes and validates keyword data.
func ParseKeywords(b []byte) (Keywords, error) {
	var k Keywords
	if err := json.Unmarshal(b, &k); err != nil {
		return Keywords{}, fmt.Errorf("decode keywords: %w", err)
	}
	if err := k.validate(); err != nil {
		return Keywords{}, fmt.Errorf("invalid keywords: %w", err)
	}
	return k, nil
}

// Classifier is immutable and safe for concurrent use.
type Classifier struct {
	version  string
	positive []string
	negative []string
}

var _ domain.Classifier = (*Classifier)(nil)

func New(k Keywords) (*Classifier, error) {
	if err := k.validate(); err != nil {
		return nil, fmt.Errorf("invalid keywords: %w", err)
	}
	return &Classifier{
		version:  k.Version,
		positive: append([]string(nil), k.Positive...),
		negative: append([]string(nil), k.Negative...),
	}, nil
}

// Load builds a classifier from the keyword file at path, or from the
// embedded data when path is empty.
func Load(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	k, err := ParseKeywords(b)
	if err != nil {
		return nil, err
	}
	return New(k)
}

var defaultClassifier = sync.OnceValue(func() *Classifier {
	k, err := ParseKeywords(embeddedKeywords)
	if err != nil {
		panic(fmt.Sprintf("classifier: embedded keywords: %v", err))
	}
	c, _ := New(k)
	return c
})

// Default returns the classifier built from the embedded keyword data.
func Default() *Classifier { return defaultClassifier() }

func (c *Classifier) Version() string { return c.version }

func (c *Classifier) Classify(text string) domain.Sentiment {
	s, _ := c.Match(text)
	return s
}

// Match is Classify that also reports the stem that decided the label.
// The stem is empty for neutral.
func (c *Classifier) Match(text string) (domain.Sentiment, string) {
	lower := strings.ToLower(text)
	for _, stem := range c.positive {
		if strings.Contains(lower, stem) {
			return domain.SentimentPositive, stem
		}
	}
	for _, stem := range c.negative {
		if strings.Contains(lower, stem) {
			return domain.SentimentNegative, stem
		}
	}
	return domain.SentimentNeutral, ""
}
