// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"aeropulse/internal/app"
	"aeropulse/internal/domain"
)

// ReviewLister is satisfied by *app.QueryService.
type ReviewLister interface {
	ListReviews(ctx context.Context, q domain.ReviewQuery) (domain.ReviewsPage, error)
}

type Handlers struct{ Q ReviewLister }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.listReviews)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// parseReviewQuery reads limit, seat_class and recommended. Seat classes are
// stored lower-cased, so the filter is too.
func parseReviewQuery(r *http.Request) (domain.ReviewQuery, *problem) {
	qs := r.URL.Query()
	q := domain.ReviewQuery{Limit: app.DefaultListLimit}

	if ls := qs.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > app.MaxListLimit {
			return q, &problem{Title: "Invalid limit", Detail: "limit must be an integer between 1 and " + strconv.Itoa(app.MaxListLimit)}
		}
		q.Limit = l
	}
	if sc := strings.TrimSpace(qs.Get("seat_class")); sc != "" {
		sc = strings.ToLower(sc)
		q.SeatClass = &sc
	}
	if rs := qs.Get("recommended"); rs != "" {
		b, err := strconv.ParseBool(rs)
		if err != nil {
			return q, &problem{Title: "Invalid recommended", Detail: "recommended must be true or false"}
		}
		q.Recommended = &b
	}
	return q, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q, p := parseReviewQuery(r)
	if p != nil {
		writeProblem(w, http.StatusBadRequest, p.Title, p.Detail)
		return
	}

	out, err := h.Q.ListReviews(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("list reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not list reviews")
		return
	}
	if out.Items == nil {
		out.Items = []domain.Review{}
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listReviews body")
	}
}
