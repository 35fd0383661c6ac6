package hostaway

import "flex_reviews/internal/domain"

func pf(f float64) *float64 { return &f }

// MockReviews is the fixed illustrative dataset served when mock mode is
// explicitly selected. The listing names slug to the registered property IDs.
var MockReviews = []domain.HostawayReview{
	{
		ID:           7453,
		Type:         "host-to-guest",
		Status:       "published",
		Rating:       nil,
		PublicReview: "Shane and family are wonderful! Would definitely host again :)",
		ReviewCategory: []domain.HostawayCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "communication", Rating: 10},
			{Category: "respect_house_rules", Rating: 10},
		},
		SubmittedAt: "2020-08-21 22:45:14",
		GuestName:   "Shane Finkelstein",
		ListingName: "2B N1 A - 29 Shoreditch Heights",
	},
	{
		ID:           7454,
		Type:         "guest-to-host",
		Status:       "published",
		Rating:       pf(9),
		PublicReview: "Fantastic stay, the flat was spotless and the location is unbeatable.",
		ReviewCategory: []domain.HostawayCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "communication", Rating: 9},
			{Category: "location", Rating: 10},
			{Category: "value", Rating: 8},
		},
		SubmittedAt: "2023-11-02 14:30:00",
		GuestName:   "Emma Thompson",
		ListingName: "2B N1 A - 29 Shoreditch Heights",
	},
	{
		ID:           7455,
		Type:         "guest-to-host",
		Status:       "published",
		Rating:       pf(8),
		PublicReview: "Great views over the Thames. Check-in instructions could be clearer.",
		ReviewCategory: []domain.HostawayCategory{
			{Category: "cleanliness", Rating: 9},
			{Category: "communication", Rating: 7},
			{Category: "location", Rating: 9},
		},
		SubmittedAt: "2023-12-15 09:12:45",
		GuestName:   "Lucas Moreau",
		ListingName: "1B E2 B - 45 Canary Wharf Tower",
	},
	{
		ID:           7456,
		Type:         "guest-to-host",
		Status:       "pending",
		Rating:       pf(7),
		PublicReview: "Cozy studio, a bit noisy on weekends but everything worked.",
		ReviewCategory: []domain.HostawayCategory{
			{Category: "cleanliness", Rating: 8},
			{Category: "communication", Rating: 8},
			{Category: "value", Rating: 7},
		},
		SubmittedAt: "2024-01-20 18:05:33",
		GuestName:   "Priya Natarajan",
		ListingName: "Studio S3 - 12 Kings Cross Central",
	},
	{
		ID:           7457,
		Type:         "guest-to-host",
		Status:       "published",
		Rating:       pf(10),
		PublicReview: "Perfect for our match weekend, two minutes from the stadium.",
		ReviewCategory: []domain.HostawayCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "communication", Rating: 10},
			{Category: "location", Rating: 10},
		},
		SubmittedAt: "2024-03-09 21:40:10",
		GuestName:   "Daniel Okafor",
		ListingName: "Wembley Stadium",
	},
	{
		ID:             7458,
		Type:           "guest-to-host",
		Status:         "published",
		Rating:         nil,
		PublicReview:   "Lovely flat, would come back.",
		ReviewCategory: nil,
		SubmittedAt:    "2024-02-14 11:00:00",
		GuestName:      "Sofia Reyes",
		ListingName:    "Studio S3 - 12 Kings Cross Central",
	},
}
