package app

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// NormalizeFiveStar converts a stored rating to the common 5-star basis.
// Hostaway ratings live on a 1-10 scale and are halved. Google ratings are
// native 1-5, but legacy rows carry the doubled 10-point value, so anything
// above 5 is halved and capped at 5. Idempotent for values already <= 5.
//
// Every display and aggregation call site goes through this one function.
func NormalizeFiveStar(src domain.Source, rating float64) float64 {
	if src == domain.SourceHostaway {
		return rating / 2
	}
	if rating > 5 {
		if half := rating / 2; half < 5 {
			return half
		}
		return 5
	}
	return rating
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a stable property ID from a listing name, e.g.
// "2B N1 A - 29 Shoreditch Heights" -> "2b-n1-a-29-shoreditch-heights".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

const hostawayTimeLayout = "2006-01-02 15:04:05"

func mapHostawayType(t string) domain.ReviewType {
	if t == string(domain.TypeHostToGuest) {
		return domain.TypeHostToGuest
	}
	return domain.TypeGuestToHost
}

func mapHostawayStatus(s string) domain.Status {
	switch domain.Status(s) {
	case domain.StatusPublished, domain.StatusRejected:
		return domain.Status(s)
	default:
		return domain.StatusPending
	}
}

// MapHostawayReview converts a raw Hostaway payload into the common shape.
// The submission time is part of the dedup key, so an unparseable one fails
// the record instead of guessing.
func MapHostawayReview(raw domain.HostawayReview) (domain.Review, error) {
	if raw.GuestName == "" || raw.ListingName == "" {
		return domain.Review{}, fmt.Errorf("hostaway review %d: missing guest or listing name", raw.ID)
	}
	submitted, err := time.ParseInLocation(hostawayTimeLayout, raw.SubmittedAt, time.UTC)
	if err != nil {
		return domain.Review{}, fmt.Errorf("hostaway review %d: bad submittedAt %q: %w", raw.ID, raw.SubmittedAt, err)
	}

	cats := make([]domain.ReviewCategory, 0, len(raw.ReviewCategory))
	for _, c := range raw.ReviewCategory {
		cats = append(cats, domain.ReviewCategory{Category: c.Category, Rating: c.Rating})
	}

	return domain.Review{
		Source:       domain.SourceHostaway,
		Type:         mapHostawayType(raw.Type),
		Status:       mapHostawayStatus(raw.Status),
		Rating:       raw.Rating,
		PublicReview: raw.PublicReview,
		SubmittedAt:  submitted,
		GuestName:    raw.GuestName,
		PropertyID:   Slug(raw.ListingName),
		PropertyName: raw.ListingName,
		Categories:   cats,
	}, nil
}

// MapGoogleReview converts a Places review. Google stars are doubled onto the
// 10-point basis shared with Hostaway; Google reviews arrive already
// published but still need manager approval for public display. Google never
// supplies category ratings.
func MapGoogleReview(raw domain.GoogleReview, propertyID, propertyName string) (domain.Review, error) {
	if raw.AuthorName == "" {
		return domain.Review{}, fmt.Errorf("google review for %s: missing author_name", propertyID)
	}
	rating := raw.Rating * 2
	return domain.Review{
		Source:       domain.SourceGoogle,
		Type:         domain.TypeGuestToHost,
		Status:       domain.StatusPublished,
		Rating:       &rating,
		PublicReview: raw.Text,
		SubmittedAt:  time.Unix(raw.Time, 0).UTC(),
		GuestName:    raw.AuthorName,
		PropertyID:   propertyID,
		PropertyName: propertyName,
	}, nil
}
