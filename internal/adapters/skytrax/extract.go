package skytrax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aeropulse/internal/domain"
)

/********** markup constants **********/

const (
	idClassPrefix  = "review-"
	verifiedMarker = "trip verified"
	routeSep       = " to "

	selDatePublished = `meta[itemprop="datePublished"]`
	selRatingBox     = "div.rating-10"
	selRatingValue   = `span[itemprop="ratingValue"]`
	selTitle         = "h2.text_header"
	selBody          = `div.text_content[itemprop="reviewBody"]`
	selRatingRows    = "table.review-ratings tr"
	selRowHeader     = "td.review-rating-header"
	selRowValue      = "td.review-value"
	selRowStars      = "td.review-rating-stars"
	selFilledStar    = "span.star.fill"
)

/********** extractor **********/

// ExtractReview reads one review block. Missing markup leaves the matching
// field nil; a malformed overall rating is the only error.
func ExtractReview(block *goquery.Selection) (domain.Review, error) {
	var rv domain.Review

	rv.ReviewID = reviewID(block)

	if v, ok := block.Find(selDatePublished).First().Attr("content"); ok {
		rv.ReviewDate = ptr(v)
	}

	if box := block.Find(selRatingBox).First(); box.Length() > 0 {
		if val := box.Find(selRatingValue).First(); val.Length() > 0 {
			raw := strings.TrimSpace(val.Text())
			n, err := strconv.Atoi(raw)
			if err != nil {
				return domain.Review{}, fmt.Errorf("overall rating %q: %w", raw, err)
			}
			rv.OverallRating = ptr(n)
		}
	}

	if h := block.Find(selTitle).First(); h.Length() > 0 {
		rv.Title = ptr(strippedText(h))
	}

	if body := block.Find(selBody).First(); body.Length() > 0 {
		text := joinedText(body)
		rv.Text = ptr(text)
		rv.TripVerified = ptr(strings.Contains(strings.ToLower(text), verifiedMarker))
	}

	block.Find(selRatingRows).Each(func(_ int, row *goquery.Selection) {
		header := row.Find(selRowHeader).First()
		if header.Length() == 0 {
			return
		}
		label := strings.ToLower(strippedText(header))

		if value := row.Find(selRowValue).First(); value.Length() > 0 {
			applyValue(&rv, label, strippedText(value))
		}
		if stars := row.Find(selRowStars).First(); stars.Length() > 0 {
			applyStars(&rv, label, stars.Find(selFilledStar).Length())
		}
	})

	return rv, nil
}

// reviewID takes the suffix of the first "review-<id>" class token.
func reviewID(block *goquery.Selection) *string {
	class, _ := block.Attr("class")
	for _, tok := range strings.Fields(class) {
		if strings.HasPrefix(tok, idClassPrefix) {
			return ptr(strings.TrimPrefix(tok, idClassPrefix))
		}
	}
	return nil
}

// applyValue maps a text cell by its row label. First matching rule wins.
func applyValue(rv *domain.Review, label, val string) {
	switch {
	case strings.Contains(label, "aircraft"):
		rv.AircraftModel = ptr(val)
	case strings.Contains(label, "type of traveller"):
		rv.TravelerType = ptr(strings.ToLower(val))
	case strings.Contains(label, "seat type"):
		rv.SeatClass = ptr(strings.ToLower(val))
	case strings.Contains(label, "route") && strings.Contains(val, routeSep):
		origin, dest, _ := strings.Cut(val, routeSep)
		rv.RouteOrigin = ptr(strings.TrimSpace(origin))
		rv.RouteDestination = ptr(strings.TrimSpace(dest))
	case strings.Contains(label, "date flown"):
		rv.FlightDate = ptr(val)
	case strings.Contains(label, "recommended"):
		rv.Recommended = ptr(strings.ToLower(val) == "yes")
	}
}

// applyStars maps a filled-star count by its row label.
func applyStars(rv *domain.Review, label string, n int) {
	switch {
	case strings.Contains(label, "seat comfort"):
		rv.SeatComfort = ptr(n)
	case strings.Contains(label, "cabin staff"):
		rv.CabinStaff = ptr(n)
	case strings.Contains(label, "food"):
		rv.FoodBeverage = ptr(n)
	case strings.Contains(label, "ground service"):
		rv.GroundService = ptr(n)
	case strings.Contains(label, "value for money"):
		rv.ValueForMoney = ptr(n)
	}
}
