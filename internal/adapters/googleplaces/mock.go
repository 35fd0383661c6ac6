package googleplaces

import "flex_reviews/internal/domain"

// MockReviews is the fixed illustrative dataset served in mock mode. The
// author names double as the fingerprint the cleanup endpoint deletes by.
var MockReviews = []domain.GoogleReview{
	{
		AuthorName: "David Smith",
		Language:   "en",
		Rating:     5,
		Text:       "Outstanding apartment. Immaculate, stylish and the host was super responsive.",
		Time:       1700822400, // 2023-11-24
	},
	{
		AuthorName: "Maria Rodriguez",
		Language:   "en",
		Rating:     4,
		Text:       "Very comfortable stay, great transport links. Street noise at night was the only downside.",
		Time:       1704067200, // 2024-01-01
	},
	{
		AuthorName: "John Anderson",
		Language:   "en",
		Rating:     5,
		Text:       "Best short let we've had in London. Everything exactly as advertised.",
		Time:       1706745600, // 2024-02-01
	},
}
