package skytrax_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"aeropulse/internal/adapters/skytrax"
	"aeropulse/internal/domain"
)

var fullBlock = `
<article class="comp comp_media-review-rated list-item media position-content review-912345" itemprop="review" itemscope itemtype="http://schema.org/Review">
  <meta itemprop="datePublished" content="2024-03-12">
  <div class="rating-10">
    <span itemprop="ratingValue"> 8 </span>/<span itemprop="bestRating">10</span>
  </div>
  <div class="body">
    <h2 class="text_header">"Great crew <em>and</em> smooth flight"</h2>
    <div class="text_content" itemprop="reviewBody"><strong><a href="/verified">Trip Verified</a></strong> | Boarding was quick. <p>The crew were friendly.</p></div>
    <table class="review-ratings">
      <tr><td class="review-rating-header aircraft">Aircraft</td><td class="review-value">Boeing 787-9</td></tr>
      <tr><td class="review-rating-header type_of_traveller">Type Of Traveller</td><td class="review-value">Solo Leisure</td></tr>
      <tr><td class="review-rating-header cabin_flown">Seat Type</td><td class="review-value">Economy Class</td></tr>
      <tr><td class="review-rating-header route">Route</td><td class="review-value"> London Heathrow to Newark </td></tr>
      <tr><td class="review-rating-header date_flown">Date Flown</td><td class="review-value">March 2024</td></tr>
      <tr><td class="review-rating-header seat_comfort">Seat Comfort</td><td class="review-rating-stars stars">` + stars(3, 5) + `</td></tr>
      <tr><td class="review-rating-header cabin_staff_service">Cabin Staff Service</td><td class="review-rating-stars stars">` + stars(5, 5) + `</td></tr>
      <tr><td class="review-rating-header food_and_beverages">Food &amp; Beverages</td><td class="review-rating-stars stars">` + stars(2, 5) + `</td></tr>
      <tr><td class="review-rating-header ground_service">Ground Service</td><td class="review-rating-stars stars">` + stars(4, 5) + `</td></tr>
      <tr><td class="review-rating-header value_for_money">Value For Money</td><td class="review-rating-stars stars">` + stars(1, 5) + `</td></tr>
      <tr><td class="review-rating-header recommended">Recommended</td><td class="review-value rating-yes">yes</td></tr>
    </table>
  </div>
</article>`

// stars renders n filled markers out of total.
func stars(n, total int) string {
	var b strings.Builder
	for i := 1; i <= total; i++ {
		if i <= n {
			fmt.Fprintf(&b, `<span class="star fill">%d</span>`, i)
		} else {
			fmt.Fprintf(&b, `<span class="star">%d</span>`, i)
		}
	}
	return b.String()
}

func page(blocks ...string) string {
	return "<html><body><div class=\"reviews\">" + strings.Join(blocks, "\n") + "</div></body></html>"
}

func article(inner string) string {
	return `<article itemprop="review" class="list-item">` + inner + `</article>`
}

func table(rows ...string) string {
	return `<table class="review-ratings">` + strings.Join(rows, "") + `</table>`
}

func valueRow(label, value string) string {
	return `<tr><td class="review-rating-header">` + label + `</td><td class="review-value">` + value + `</td></tr>`
}

func starRow(label string, n int) string {
	return `<tr><td class="review-rating-header">` + label + `</td><td class="review-rating-stars">` + stars(n, 5) + `</td></tr>`
}

func only(t *testing.T, markup string) domain.Review {
	t.Helper()
	res, err := skytrax.ParseHTML(page(markup))
	require.NoError(t, err)
	require.Empty(t, res.Skips)
	require.Len(t, res.Records, 1)
	return res.Records[0]
}

func ptr[T any](v T) *T { return &v }

func TestExtract_FullBlock(t *testing.T) {
	got := only(t, fullBlock)

	want := domain.Review{
		ReviewID:         ptr("912345"),
		ReviewDate:       ptr("2024-03-12"),
		FlightDate:       ptr("March 2024"),
		RouteOrigin:      ptr("London Heathrow"),
		RouteDestination: ptr("Newark"),
		AircraftModel:    ptr("Boeing 787-9"),
		SeatClass:        ptr("economy class"),
		TravelerType:     ptr("solo leisure"),
		TripVerified:     ptr(true),
		Recommended:      ptr(true),
		OverallRating:    ptr(8),
		SeatComfort:      ptr(3),
		CabinStaff:       ptr(5),
		FoodBeverage:     ptr(2),
		GroundService:    ptr(4),
		ValueForMoney:    ptr(1),
		Title:            ptr(`"Great crewandsmooth flight"`),
		Text:             ptr("Trip Verified | Boarding was quick. The crew were friendly."),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_EmptyBlockStillEmitted(t *testing.T) {
	got := only(t, article(""))
	require.Equal(t, domain.Review{}, got)
}

func TestExtract_MissingFieldsDoNotAffectOthers(t *testing.T) {
	got := only(t, article(`<h2 class="text_header">Late again</h2>`+table(valueRow("Aircraft", "A320"))))

	require.Equal(t, "Late again", *got.Title)
	require.Equal(t, "A320", *got.AircraftModel)
	require.Nil(t, got.ReviewID)
	require.Nil(t, got.ReviewDate)
	require.Nil(t, got.OverallRating)
	require.Nil(t, got.Text)
	require.Nil(t, got.TripVerified)
	require.Nil(t, got.Recommended)
	require.Nil(t, got.SeatComfort)
}

func TestExtract_Route(t *testing.T) {
	cases := []struct {
		name        string
		value       string
		origin      *string
		destination *string
	}{
		{"simple", "LHR to JFK", ptr("LHR"), ptr("JFK")},
		{"no separator", "LHR-JFK", nil, nil},
		{"first separator only", "Denver to Chicago to Boston", ptr("Denver"), ptr("Chicago to Boston")},
		{"separator is case sensitive", "Heathrow TO Newark", nil, nil},
		{"capitalised To is part of origin", "Paris To Lyon to Nice", ptr("Paris To Lyon"), ptr("Nice")},
		{"via keeps destination text", "Houston to Tokyo via Guam", ptr("Houston"), ptr("Tokyo via Guam")},
		{"toronto is not a separator", "Toronto-Chicago", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := only(t, article(table(valueRow("Route", tc.value))))
			require.Equal(t, tc.origin, got.RouteOrigin)
			require.Equal(t, tc.destination, got.RouteDestination)
		})
	}
}

func TestExtract_TripVerified(t *testing.T) {
	cases := []struct {
		body string
		want bool
	}{
		{"✅ Trip Verified | Great flight", true},
		{"Not verified, but nice", false},
		{"trip   verified is not the marker", false},
		{"TRIP VERIFIED | shouting", true},
	}
	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			got := only(t, article(`<div class="text_content" itemprop="reviewBody">`+tc.body+`</div>`))
			require.NotNil(t, got.TripVerified)
			require.Equal(t, tc.want, *got.TripVerified)
			require.Equal(t, tc.body, *got.Text)
		})
	}
}

func TestExtract_BodyWithoutItempropIgnored(t *testing.T) {
	got := only(t, article(`<div class="text_content">Trip Verified | hidden</div>`))
	require.Nil(t, got.Text)
	require.Nil(t, got.TripVerified)
}

func TestExtract_Recommended(t *testing.T) {
	cases := map[string]bool{
		"Yes":   true,
		"yes":   true,
		"no":    false,
		"Maybe": false,
		"yes!":  false,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got := only(t, article(table(valueRow("Recommended", in))))
			require.NotNil(t, got.Recommended)
			require.Equal(t, want, *got.Recommended)
		})
	}
}

func TestExtract_StarCounts(t *testing.T) {
	got := only(t, article(table(
		starRow("Seat Comfort", 0),
		starRow("Cabin Staff Service", 5),
		starRow("Wifi & Connectivity", 3),
	)))

	require.NotNil(t, got.SeatComfort, "zero filled stars is 0, not unset")
	require.Equal(t, 0, *got.SeatComfort)
	require.Equal(t, 5, *got.CabinStaff)
	require.Nil(t, got.FoodBeverage)
	require.Nil(t, got.GroundService)
	require.Nil(t, got.ValueForMoney)
}

func TestExtract_TableRowEdgeCases(t *testing.T) {
	got := only(t, article(table(
		// no header cell: ignored
		`<tr><td class="review-value">A380</td></tr>`,
		// both value and stars in one row
		`<tr><td class="review-rating-header">Aircraft food</td><td class="review-value">B777</td><td class="review-rating-stars">`+stars(2, 5)+`</td></tr>`,
		valueRow("Type Of Traveller", "Family Leisure"),
		valueRow("Seat Type", "Premium Economy"),
		valueRow("Date Flown", "June 2023"),
	)))

	require.Equal(t, "B777", *got.AircraftModel)
	require.Equal(t, 2, *got.FoodBeverage)
	require.Equal(t, "family leisure", *got.TravelerType)
	require.Equal(t, "premium economy", *got.SeatClass)
	require.Equal(t, "June 2023", *got.FlightDate)
}

func TestExtract_ReviewIDFirstMatchWins(t *testing.T) {
	got := only(t, `<article itemprop="review" class="media review-111 review-222"></article>`)
	require.Equal(t, "111", *got.ReviewID)
}

func TestExtract_RatingBoxWithoutValue(t *testing.T) {
	got := only(t, article(`<div class="rating-10"><span>n/a</span></div>`))
	require.Nil(t, got.OverallRating)
}

func TestParsePage_BadRatingSkipsOnlyThatBlock(t *testing.T) {
	bad := `<article itemprop="review" class="review-2"><div class="rating-10"><span itemprop="ratingValue">na</span></div><h2 class="text_header">broken</h2></article>`
	good1 := `<article itemprop="review" class="review-1"><div class="rating-10"><span itemprop="ratingValue">9</span></div></article>`
	good3 := `<article itemprop="review" class="review-3"><div class="rating-10"><span itemprop="ratingValue">1</span></div></article>`

	res, err := skytrax.ParseHTML(page(good1, bad, good3))
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	require.Equal(t, "1", *res.Records[0].ReviewID)
	require.Equal(t, "3", *res.Records[1].ReviewID)

	require.Len(t, res.Skips, 1)
	require.Equal(t, 1, res.Skips[0].Index)
	require.Equal(t, "2", res.Skips[0].ReviewID)
	require.Contains(t, res.Skips[0].Reason, "overall rating")
}

func TestParsePage_NoBlocks(t *testing.T) {
	res, err := skytrax.ParseHTML(page(`<article class="review-9">not a review</article>`))
	require.NoError(t, err)
	require.Empty(t, res.Records)
	require.Empty(t, res.Skips)
}

func TestParsePage_DocumentOrder(t *testing.T) {
	var blocks []string
	for i := 1; i <= 6; i++ {
		blocks = append(blocks, fmt.Sprintf(`<article itemprop="review" class="review-%d"></article>`, i))
	}
	res, err := skytrax.Parser{}.ParsePage(strings.NewReader(page(blocks...)))
	require.NoError(t, err)
	require.Len(t, res.Records, 6)
	for i, rv := range res.Records {
		require.Equal(t, fmt.Sprint(i+1), *rv.ReviewID)
	}
}
