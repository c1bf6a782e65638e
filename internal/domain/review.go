package domain

import "strconv"

// Review is one scraped airline review. Every field is optional; nil means
// the markup for it was absent.
type Review struct {
	ReviewID         *string `json:"review_id,omitempty"`
	ReviewDate       *string `json:"review_date,omitempty"`
	FlightDate       *string `json:"flight_date,omitempty"`
	RouteOrigin      *string `json:"route_origin,omitempty"`
	RouteDestination *string `json:"route_destination,omitempty"`
	AircraftModel    *string `json:"aircraft_model,omitempty"`
	SeatClass        *string `json:"seat_class,omitempty"`
	TravelerType     *string `json:"traveler_type,omitempty"`
	TripVerified     *bool   `json:"trip_verified_flag,omitempty"`
	Recommended      *bool   `json:"recommended_flag,omitempty"`
	OverallRating    *int    `json:"overall_rating_10,omitempty"`
	SeatComfort      *int    `json:"seat_comfort_rating,omitempty"`
	CabinStaff       *int    `json:"cabin_staff_rating,omitempty"`
	FoodBeverage     *int    `json:"food_beverage_rating,omitempty"`
	GroundService    *int    `json:"ground_service_rating,omitempty"`
	ValueForMoney    *int    `json:"value_for_money_rating,omitempty"`
	Title            *string `json:"review_title,omitempty"`
	Text             *string `json:"review_text,omitempty"`
}

// Columns is the fixed tabular header, in the order Row renders values.
var Columns = []string{
	"review_id",
	"review_date",
	"flight_date",
	"route_origin",
	"route_destination",
	"aircraft_model",
	"seat_class",
	"traveler_type",
	"trip_verified_flag",
	"recommended_flag",
	"overall_rating_10",
	"seat_comfort_rating",
	"cabin_staff_rating",
	"food_beverage_rating",
	"ground_service_rating",
	"value_for_money_rating",
	"review_title",
	"review_text",
}

// Row renders the review as one tabular row aligned with Columns.
// Unset fields become empty cells.
func (r Review) Row() []string {
	return []string{
		cellStr(r.ReviewID),
		cellStr(r.ReviewDate),
		cellStr(r.FlightDate),
		cellStr(r.RouteOrigin),
		cellStr(r.RouteDestination),
		cellStr(r.AircraftModel),
		cellStr(r.SeatClass),
		cellStr(r.TravelerType),
		cellBool(r.TripVerified),
		cellBool(r.Recommended),
		cellInt(r.OverallRating),
		cellInt(r.SeatComfort),
		cellInt(r.CabinStaff),
		cellInt(r.FoodBeverage),
		cellInt(r.GroundService),
		cellInt(r.ValueForMoney),
		cellStr(r.Title),
		cellStr(r.Text),
	}
}

func cellStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func cellBool(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}

func cellInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
