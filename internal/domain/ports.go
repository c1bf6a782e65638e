package domain

import "context"

type ReviewRepository interface {
	// Write path
	InsertReviews(ctx context.Context, runID string, rs []Review) error

	// Read path
	ListReviews(ctx context.Context, q ReviewQuery) ([]Review, error)
}

// PageSource returns the raw markup of one listing page (1-based).
type PageSource interface {
	FetchPage(ctx context.Context, page, pageSize int) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// CacheInvalidator drops every cached entry whose key starts with prefix.
type CacheInvalidator interface {
	DelPrefix(ctx context.Context, prefix string) error
}

// ReviewQuery filters stored reviews. Nil filters match everything.
type ReviewQuery struct {
	SeatClass   *string
	Recommended *bool
	Limit       int
}

type ReviewsPage struct {
	Items []Review `json:"items"`
}
