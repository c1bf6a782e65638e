package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO airline_reviews\n" +
	"  (run_id, review_id, review_date, flight_date, route_origin, route_destination,\n" +
	"   aircraft_model, seat_class, traveler_type, trip_verified, recommended,\n" +
	"   overall_rating, seat_comfort, cabin_staff, food_beverage, ground_service,\n" +
	"   value_for_money, title, `text`)\nVALUES "

const reviewPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

const reviewParams = 19

// InsertChunk caps rows per INSERT; MySQL allows at most 65,535 placeholders
// per prepared statement.
const InsertChunk = 500

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listReviewsSelect = "SELECT\n" +
	"  review_id, review_date, flight_date, route_origin, route_destination,\n" +
	"  aircraft_model, seat_class, traveler_type, trip_verified, recommended,\n" +
	"  overall_rating, seat_comfort, cabin_staff, food_beverage, ground_service,\n" +
	"  value_for_money, title, `text`\n" +
	"FROM airline_reviews\n"

const listReviewsOrder = "ORDER BY scraped_at DESC, id DESC\nLIMIT ?"
