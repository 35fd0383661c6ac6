package domain

// Raw payloads as the source APIs deliver them. Mapping into Review happens
// in the app layer so both adapters stay thin.

type HostawayReview struct {
	ID             int64              `json:"id"`
	Type           string             `json:"type"`
	Status         string             `json:"status"`
	Rating         *float64           `json:"rating"`
	PublicReview   string             `json:"publicReview"`
	ReviewCategory []HostawayCategory `json:"reviewCategory"`
	SubmittedAt    string             `json:"submittedAt"` // "2006-01-02 15:04:05"
	GuestName      string             `json:"guestName"`
	ListingName    string             `json:"listingName"`
}

type HostawayCategory struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

type GoogleReview struct {
	AuthorName string  `json:"author_name"`
	Language   string  `json:"language"`
	Rating     float64 `json:"rating"` // native 1-5 stars
	Text       string  `json:"text"`
	Time       int64   `json:"time"` // unix seconds
}
