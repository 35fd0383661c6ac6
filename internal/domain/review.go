package domain

import "time"

type Source string

const (
	SourceHostaway Source = "hostaway"
	SourceGoogle   Source = "google"
)

type ReviewType string

const (
	TypeGuestToHost ReviewType = "guest-to-host"
	TypeHostToGuest ReviewType = "host-to-guest"
)

type Status string

const (
	StatusPublished Status = "published"
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
)

// Review is the normalized shape shared by both sources. Rating is stored on
// the 10-point basis (Google's 1-5 stars are doubled at ingestion) and may be
// absent entirely.
type Review struct {
	ID                  int64            `json:"id"`
	Source              Source           `json:"source"`
	Type                ReviewType       `json:"type"`
	Status              Status           `json:"status"`
	Rating              *float64         `json:"rating"`
	PublicReview        string           `json:"publicReview"`
	PrivateReview       *string          `json:"privateReview,omitempty"`
	SubmittedAt         time.Time        `json:"submittedAt"`
	GuestName           string           `json:"guestName"`
	PropertyID          string           `json:"propertyId"`
	PropertyName        string           `json:"propertyName"`
	IsApprovedForPublic bool             `json:"isApprovedForPublic"`
	ManagerNotes        *string          `json:"managerNotes,omitempty"`
	Categories          []ReviewCategory `json:"categories"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// ReviewCategory is a named sub-rating on the source's native scale.
// Only Hostaway supplies these.
type ReviewCategory struct {
	ID       int64   `json:"id"`
	ReviewID int64   `json:"reviewId"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

// PropertyStats is derived on every read from the full review set; it is
// never persisted or cached. Per-source and overall averages are on the
// 5-star basis; category averages stay on the native scale.
type PropertyStats struct {
	PropertyID            string             `json:"propertyId"`
	PropertyName          string             `json:"propertyName"`
	TotalReviews          int                `json:"totalReviews"`
	ApprovedReviews       int                `json:"approvedReviews"`
	PendingReviews        int                `json:"pendingReviews"`
	AverageRating         float64            `json:"averageRating"`
	GoogleAverageRating   float64            `json:"googleAverageRating"`
	GoogleReviewCount     int                `json:"googleReviewCount"`
	HostawayAverageRating float64            `json:"hostawayAverageRating"`
	HostawayReviewCount   int                `json:"hostawayReviewCount"`
	CategoryAverages      map[string]float64 `json:"categoryAverages"`
}
