package skytrax

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"aeropulse/internal/domain"
)

const selReviewBlock = `article[itemprop="review"]`

// Parser implements domain.PageParser for Skytrax listing pages.
type Parser struct{}

func (Parser) ParsePage(r io.Reader) (domain.PageResult, error) { return ParsePage(r) }

// ParsePage extracts every review block on a listing page in document order.
// Blocks that fail extraction are reported as skips and do not stop the page.
func ParsePage(r io.Reader) (domain.PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return domain.PageResult{}, fmt.Errorf("parse page markup: %w", err)
	}

	var res domain.PageResult
	doc.Find(selReviewBlock).Each(func(i int, block *goquery.Selection) {
		rv, err := ExtractReview(block)
		if err != nil {
			skip := domain.Skip{Index: i, Reason: err.Error()}
			if id := reviewID(block); id != nil {
				skip.ReviewID = *id
			}
			log.Warn().
				Int("index", i).
				Str("review_id", skip.ReviewID).
				Err(err).
				Msg("skipping review due to parse error")
			res.Skips = append(res.Skips, skip)
			return
		}
		res.Records = append(res.Records, rv)
	})
	return res, nil
}

// ParseHTML is ParsePage over an in-memory document.
func ParseHTML(s string) (domain.PageResult, error) {
	return ParsePage(strings.NewReader(s))
}
