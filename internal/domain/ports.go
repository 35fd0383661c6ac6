package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type ReviewRepository interface {
	// InsertIfAbsent stores the review atomically keyed on
	// (source, guest_name, submitted_at, property_id). When a row with that
	// tuple already exists it is returned untouched and created is false.
	InsertIfAbsent(ctx context.Context, rv Review) (stored Review, created bool, err error)

	List(ctx context.Context, q ReviewsQuery) (items []Review, total int, err error)
	GetByID(ctx context.Context, id int64) (Review, error)
	UpdateModeration(ctx context.Context, id int64, patch ModerationPatch) (Review, error)

	// AllReviews feeds stats aggregation; always the full set, never paged.
	AllReviews(ctx context.Context) ([]Review, error)
	DistinctProperties(ctx context.Context) ([]PropertyRef, error)
	PropertyName(ctx context.Context, propertyID string) (string, error)

	DeleteByGuestNames(ctx context.Context, src Source, names []string) (int64, error)
}

type HostawayClient interface {
	GetReviews(ctx context.Context) ([]HostawayReview, error)
}

type PlacesClient interface {
	// PropertyReviews resolves the property's place ID (through the injected
	// PlaceIDStore) and returns its Google reviews. An unresolvable property
	// yields an empty slice, not an error.
	PropertyReviews(ctx context.Context, propertyID, propertyName string) ([]GoogleReview, error)
	FindPlaceID(ctx context.Context, name, address string) (string, error)
}

// PlaceIDStore keeps discovered Google place IDs. Injected at startup so no
// request-scoped code touches process-global state.
type PlaceIDStore interface {
	Get(ctx context.Context, propertyID string) (string, bool, error)
	Set(ctx context.Context, propertyID, placeID string) error
	All(ctx context.Context) (map[string]string, error)
}

// Read models & queries

type ReviewsQuery struct {
	Search     string
	Source     *Source
	Status     *Status
	PropertyID string
	MinRating  *float64 // native scale, inclusive
	MaxRating  *float64
	StartDate  *time.Time // inclusive
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
	Page       int // 1-indexed
	Limit      int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ReviewsPage struct {
	Items      []Review
	Pagination Pagination
}

type ModerationPatch struct {
	IsApprovedForPublic *bool
	ManagerNotes        *string
}

type PropertyRef struct {
	ID   string
	Name string
}
