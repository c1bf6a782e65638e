package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"aeropulse/internal/domain"
)

// Params describes one scrape-and-save run.
type Params struct {
	Pages    int
	PageSize int
	OutPath  string
	RunID    string // tags stored rows; only used when a repository is set
}

// Outcome summarises a finished run.
type Outcome struct {
	Collected     int
	Skipped       int
	Saved         int
	Stored        int
	NothingToSave bool
	Skips         []domain.Skip
}

type IngestionService struct {
	scrape   *ScrapeService
	exporter domain.ReviewExporter
	repo     domain.ReviewRepository // optional
	cache    domain.CacheInvalidator // optional, only used with repo
}

func NewIngestionService(s *ScrapeService, e domain.ReviewExporter, r domain.ReviewRepository) *IngestionService {
	return &IngestionService{scrape: s, exporter: e, repo: r}
}

// WithCacheInvalidation makes Run drop cached review lists after a store.
func (s *IngestionService) WithCacheInvalidation(c domain.CacheInvalidator) *IngestionService {
	s.cache = c
	return s
}

// Run scrapes, exports to p.OutPath, then optionally persists. An empty
// collection is not an error: Outcome.NothingToSave is set and no file is
// written.
func (s *IngestionService) Run(ctx context.Context, p Params) (Outcome, error) {
	res, err := s.scrape.Collect(ctx, p.Pages, p.PageSize)
	if err != nil {
		return Outcome{}, fmt.Errorf("collect: %w", err)
	}
	out := Outcome{
		Collected: len(res.Records),
		Skipped:   len(res.Skips),
		Skips:     res.Skips,
	}

	n, err := s.exporter.Export(p.OutPath, res.Records)
	switch {
	case errors.Is(err, domain.ErrNothingToSave):
		out.NothingToSave = true
		log.Warn().Str("path", p.OutPath).Msg("unable to collect reviews, nothing to save")
		return out, nil
	case err != nil:
		return out, fmt.Errorf("export: %w", err)
	}
	out.Saved = n
	log.Info().Int("rows", n).Str("path", p.OutPath).Msgf("saved %d rows -> %s", n, p.OutPath)

	if s.repo != nil {
		if err := s.repo.InsertReviews(ctx, p.RunID, res.Records); err != nil {
			// the CSV is already on disk at this point
			return out, fmt.Errorf("store reviews for run %s: %w", p.RunID, err)
		}
		out.Stored = len(res.Records)
		log.Info().Int("rows", out.Stored).Str("run", p.RunID).Msg("reviews stored")

		if s.cache != nil {
			if err := s.cache.DelPrefix(ctx, ReviewsCachePrefix); err != nil {
				log.Warn().Err(err).Msg("review list cache not cleared; entries expire with their TTL")
			}
		}
	}
	return out, nil
}
