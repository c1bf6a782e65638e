package app

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"aeropulse/internal/adapters/observability"
	"aeropulse/internal/domain"
)

const DefaultWorkers = 8

// ScrapeResult is the concatenation of every page's PageResult.
type ScrapeResult struct {
	Records []domain.Review
	Skips   []domain.Skip
	Pages   int
}

// ScrapeService fans page jobs out to a bounded pool. Each job fetches one
// page and parses it to completion.
type ScrapeService struct {
	src     domain.PageSource
	parser  domain.PageParser
	workers int
}

func NewScrapeService(src domain.PageSource, p domain.PageParser, workers int) *ScrapeService {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &ScrapeService{src: src, parser: p, workers: workers}
}

// Collect scrapes pages 1..pages. Records across pages arrive in completion
// order; within a page they keep document order. A failing page does not
// cancel the others; the first error observed is returned once all jobs end.
func (s *ScrapeService) Collect(ctx context.Context, pages, pageSize int) (ScrapeResult, error) {
	var (
		mu  sync.Mutex
		out ScrapeResult
		g   errgroup.Group
	)
	g.SetLimit(s.workers)

	for page := 1; page <= pages; page++ {
		page := page
		g.Go(func() error {
			res, err := s.scrapePage(ctx, page, pageSize)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			out.Records = append(out.Records, res.Records...)
			out.Skips = append(out.Skips, res.Skips...)
			out.Pages++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScrapeResult{}, err
	}

	log.Info().
		Int("reviews", len(out.Records)).
		Int("skipped", len(out.Skips)).
		Int("pages", out.Pages).
		Msgf("scraping completed: %d reviews collected", len(out.Records))
	return out, nil
}

func (s *ScrapeService) scrapePage(ctx context.Context, page, pageSize int) (domain.PageResult, error) {
	body, err := s.src.FetchPage(ctx, page, pageSize)
	if err != nil {
		return domain.PageResult{}, err
	}
	res, err := s.parser.ParsePage(bytes.NewReader(body))
	if err != nil {
		return domain.PageResult{}, fmt.Errorf("page %d: %w", page, err)
	}
	for i := range res.Skips {
		res.Skips[i].Page = page
	}
	observability.ObservePage(len(res.Records), len(res.Skips))
	log.Debug().
		Int("page", page).
		Int("records", len(res.Records)).
		Int("skipped", len(res.Skips)).
		Msg("page parsed")
	return res, nil
}
