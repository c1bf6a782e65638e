package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aeropulse/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects with the DSN and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// InsertReviews appends one row per record tagged with runID, in batches of
// InsertChunk rows inside a single transaction. Records from earlier runs are
// never touched.
func (r *Repo) InsertReviews(ctx context.Context, runID string, rs []domain.Review) (err error) {
	if len(rs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for start := 0; start < len(rs); start += InsertChunk {
		end := min(start+InsertChunk, len(rs))
		sqlStr, args := insertBatch(runID, rs[start:end])
		if _, err = tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert reviews %d-%d of %d: %w", start, end, len(rs), err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %d reviews: %w", len(rs), err)
	}
	return nil
}

func insertBatch(runID string, rs []domain.Review) (string, []any) {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*reviewParams)
	for _, rv := range rs {
		values = append(values, reviewPlaceholders)
		args = append(args,
			runID,
			valStr(rv.ReviewID),
			valStr(rv.ReviewDate),
			valStr(rv.FlightDate),
			valStr(rv.RouteOrigin),
			valStr(rv.RouteDestination),
			valStr(rv.AircraftModel),
			valStr(rv.SeatClass),
			valStr(rv.TravelerType),
			valBool(rv.TripVerified),
			valBool(rv.Recommended),
			valInt(rv.OverallRating),
			valInt(rv.SeatComfort),
			valInt(rv.CabinStaff),
			valInt(rv.FoodBeverage),
			valInt(rv.GroundService),
			valInt(rv.ValueForMoney),
			valStr(rv.Title),
			valStr(rv.Text),
		)
	}
	return insertReviewsPrefix + strings.Join(values, ","), args
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ReviewQuery) ([]domain.Review, error) {
	var (
		where []string
		args  []any
	)
	if q.SeatClass != nil {
		where = append(where, "seat_class = ?")
		args = append(args, *q.SeatClass)
	}
	if q.Recommended != nil {
		where = append(where, "recommended = ?")
		args = append(args, *q.Recommended)
	}
	query := listReviewsSelect
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	query += listReviewsOrder
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanReview(rows *sql.Rows) (domain.Review, error) {
	var (
		reviewID, reviewDate, flightDate sql.NullString
		origin, destination, aircraft    sql.NullString
		seat, traveler, title, text      sql.NullString
		verified, recommended            sql.NullBool
		overall, comfort, staff          sql.NullInt64
		food, ground, value              sql.NullInt64
	)
	if err := rows.Scan(
		&reviewID, &reviewDate, &flightDate, &origin, &destination,
		&aircraft, &seat, &traveler, &verified, &recommended,
		&overall, &comfort, &staff, &food, &ground,
		&value, &title, &text,
	); err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		ReviewID:         nullStr(reviewID),
		ReviewDate:       nullStr(reviewDate),
		FlightDate:       nullStr(flightDate),
		RouteOrigin:      nullStr(origin),
		RouteDestination: nullStr(destination),
		AircraftModel:    nullStr(aircraft),
		SeatClass:        nullStr(seat),
		TravelerType:     nullStr(traveler),
		TripVerified:     nullBool(verified),
		Recommended:      nullBool(recommended),
		OverallRating:    nullInt(overall),
		SeatComfort:      nullInt(comfort),
		CabinStaff:       nullInt(staff),
		FoodBeverage:     nullInt(food),
		GroundService:    nullInt(ground),
		ValueForMoney:    nullInt(value),
		Title:            nullStr(title),
		Text:             nullStr(text),
	}, nil
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	i := int(n.Int64)
	return &i
}
func nullBool(n sql.NullBool) *bool {
	if !n.Valid {
		return nil
	}
	b := n.Bool
	return &b
}
