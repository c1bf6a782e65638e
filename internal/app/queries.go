package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"aeropulse/internal/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	// ReviewsCachePrefix starts every cached review list key.
	ReviewsCachePrefix = "reviews:"
)

type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache // optional
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPage, error) {
	q = normalizeQuery(q)
	key := cacheKey(q)

	var out domain.ReviewsPage
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	rs, err := s.repo.ListReviews(ctx, q)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	// copy slice to avoid aliasing the repo's backing array
	out = domain.ReviewsPage{Items: make([]domain.Review, len(rs))}
	copy(out.Items, rs)

	if s.cache != nil {
		// optional size guard
		if b, _ := json.Marshal(out); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
		}
	}
	return out, nil
}

func normalizeQuery(q domain.ReviewQuery) domain.ReviewQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	return q
}

// cacheKey: reviews:{limit}:{seat|*}:{recommended|*}
func cacheKey(q domain.ReviewQuery) string {
	seat, rec := "*", "*"
	if q.SeatClass != nil {
		seat = *q.SeatClass
	}
	if q.Recommended != nil {
		rec = strconv.FormatBool(*q.Recommended)
	}
	return fmt.Sprintf("%s%d:%s:%s", ReviewsCachePrefix, q.Limit, seat, rec)
}
