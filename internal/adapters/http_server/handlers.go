package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct {
	Q   *app.QueryService
	Ing *app.IngestionService

	// UseMockData forces mock ingestion regardless of the per-request flag.
	UseMockData bool
}

// All responses share this envelope.
type response struct {
	Success      bool               `json:"success"`
	Data         any                `json:"data,omitempty"`
	Error        string             `json:"error,omitempty"`
	Details      string             `json:"details,omitempty"`
	Pagination   *domain.Pagination `json:"pagination,omitempty"`
	Source       string             `json:"source,omitempty"`
	Count        *int               `json:"count,omitempty"`
	Message      string             `json:"message,omitempty"`
	DeletedCount *int64             `json:"deletedCount,omitempty"`
	PlaceID      string             `json:"placeId,omitempty"`
}

const msgValidation = "Invalid input provided"

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := response{Success: false, Error: msg}
	if err != nil && status == http.StatusInternalServerError {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/reviews", h.listReviews)
	s.mux.Patch("/reviews", h.updateReview)
	s.mux.Get("/properties", h.propertyStats)
	s.mux.Get("/reviews/hostaway", h.ingestHostaway)
	s.mux.Get("/reviews/google", h.ingestGoogle)
	s.mux.Post("/reviews/google", h.registerGoogleProperty)
	s.mux.Get("/reviews/google/place-ids", h.placeIDs)
	s.mux.Post("/reviews/google/place-ids", h.setPlaceID)
	s.mux.Delete("/reviews/google/cleanup", h.cleanupMockReviews)
}

// ---- GET /reviews ----

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q := parseReviewsQuery(r)
	page, err := h.Q.ListReviews(r.Context(), q)
	if err != nil {
		log.Error().Err(err).Msg("list reviews failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews", err)
		return
	}
	if page.Items == nil {
		page.Items = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: page.Items, Pagination: &page.Pagination})
}

// Invalid filter values are ignored rather than rejected; paging/sort
// defaults are applied downstream by the query service.
func parseReviewsQuery(r *http.Request) domain.ReviewsQuery {
	qp := r.URL.Query()
	q := domain.ReviewsQuery{
		Search:     qp.Get("search"),
		PropertyID: qp.Get("propertyId"),
		SortBy:     qp.Get("sortBy"),
		SortOrder:  qp.Get("sortOrder"),
	}
	if v := qp.Get("source"); v != "" {
		src := domain.Source(v)
		q.Source = &src
	}
	if v := qp.Get("status"); v != "" {
		st := domain.Status(v)
		q.Status = &st
	}
	if v := qp.Get("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinRating = &f
		}
	}
	if v := qp.Get("maxRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxRating = &f
		}
	}
	if t, ok := parseDate(qp.Get("startDate")); ok {
		q.StartDate = &t
	}
	if t, ok := parseDate(qp.Get("endDate")); ok {
		q.EndDate = &t
	}
	if v := qp.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = n
		}
	}
	if v := qp.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	return q
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ---- PATCH /reviews ----

type updateReviewRequest struct {
	ID                  *int64  `json:"id"`
	IsApprovedForPublic *bool   `json:"isApprovedForPublic"`
	ManagerNotes        *string `json:"managerNotes"`
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	var body updateReviewRequest
	// a type mismatch on any field surfaces as a decode error
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgValidation, nil)
		return
	}
	if body.ID == nil {
		writeError(w, http.StatusBadRequest, msgValidation, nil)
		return
	}

	updated, err := h.Q.UpdateModeration(r.Context(), *body.ID, domain.ModerationPatch{
		IsApprovedForPublic: body.IsApprovedForPublic,
		ManagerNotes:        body.ManagerNotes,
	})
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Review not found", nil)
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("id", *body.ID).Msg("update review failed")
		writeError(w, http.StatusInternalServerError, "Failed to update review", err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: updated})
}

// ---- GET /properties ----

func (h *Handlers) propertyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Q.PropertyStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("property stats failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch property statistics", err)
		return
	}
	if stats == nil {
		stats = []domain.PropertyStats{}
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: stats})
}

// ---- ingestion ----

func (h *Handlers) useMock(r *http.Request) bool {
	qp := r.URL.Query()
	return h.UseMockData || qp.Get("source") == "mock" || qp.Get("forceMock") == "true"
}

func (h *Handlers) ingestHostaway(w http.ResponseWriter, r *http.Request) {
	res, err := h.Ing.IngestHostaway(r.Context(), h.useMock(r))
	if err != nil {
		log.Error().Err(err).Msg("hostaway ingestion failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch and process reviews", err)
		return
	}
	n := len(res.Reviews)
	writeJSON(w, http.StatusOK, response{Success: true, Data: res.Reviews, Source: res.Source, Count: &n})
}

func (h *Handlers) ingestGoogle(w http.ResponseWriter, r *http.Request) {
	res, err := h.Ing.IngestGoogle(r.Context(), r.URL.Query().Get("propertyId"), h.useMock(r))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Property not found", nil)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("google ingestion failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch Google reviews", err)
		return
	}
	n := len(res.Reviews)
	writeJSON(w, http.StatusOK, response{Success: true, Data: res.Reviews, Source: res.Source, Count: &n})
}

type registerPropertyRequest struct {
	PropertyID   string `json:"propertyId"`
	PropertyName string `json:"propertyName"`
	PlaceID      string `json:"placeId"`
}

func (h *Handlers) registerGoogleProperty(w http.ResponseWriter, r *http.Request) {
	var body registerPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PropertyID == "" || body.PropertyName == "" {
		writeError(w, http.StatusBadRequest, "Property ID and name are required", nil)
		return
	}

	res, placeID, err := h.Ing.RegisterGoogleProperty(r.Context(), body.PropertyID, body.PropertyName, body.PlaceID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Could not find Google Place ID for this property", nil)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("property", body.PropertyID).Msg("register google property failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch Google reviews", err)
		return
	}
	n := len(res.Reviews)
	writeJSON(w, http.StatusOK, response{Success: true, Data: res.Reviews, PlaceID: placeID, Count: &n})
}

// ---- place-ID administration ----

func (h *Handlers) placeIDs(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	state, err := h.Ing.PlaceIDs(r.Context(), refresh)
	if err != nil {
		log.Error().Err(err).Msg("place ids failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch Place IDs", err)
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Data: state})
}

type setPlaceIDRequest struct {
	PropertyID string `json:"propertyId"`
	PlaceID    string `json:"placeId"`
}

func (h *Handlers) setPlaceID(w http.ResponseWriter, r *http.Request) {
	var body setPlaceIDRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PropertyID == "" || body.PlaceID == "" {
		writeError(w, http.StatusBadRequest, "Property ID and Place ID are required", nil)
		return
	}
	if err := h.Ing.SetPlaceID(r.Context(), body.PropertyID, body.PlaceID); err != nil {
		log.Error().Err(err).Msg("set place id failed")
		writeError(w, http.StatusInternalServerError, "Failed to set Place ID", err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Place ID %s set for property %s", body.PlaceID, body.PropertyID),
	})
}

// ---- DELETE /reviews/google/cleanup ----

func (h *Handlers) cleanupMockReviews(w http.ResponseWriter, r *http.Request) {
	n, err := h.Ing.CleanupMockGoogle(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("cleanup failed")
		writeError(w, http.StatusInternalServerError, "Failed to clean up mock reviews", err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Success:      true,
		Message:      fmt.Sprintf("Deleted %d mock Google reviews", n),
		DeletedCount: &n,
	})
}
