package app

import (
	"sort"

	"flex_reviews/internal/domain"
)

type statsAccum struct {
	stats domain.PropertyStats

	overallSum   float64
	overallCount int
	googleSum    float64
	hostawaySum  float64

	catSum   map[string]float64
	catCount map[string]int
}

// BuildPropertyStats aggregates the full review set into per-property stats.
// Reviews without a rating count toward totals but never toward averages.
// Per-source and overall averages are 5-star normalized; category averages
// stay on the native scale and divide by the number of reviews carrying the
// category, not the total review count.
func BuildPropertyStats(reviews []domain.Review) []domain.PropertyStats {
	byProperty := make(map[string]*statsAccum)

	for _, rv := range reviews {
		acc, ok := byProperty[rv.PropertyID]
		if !ok {
			acc = &statsAccum{
				stats: domain.PropertyStats{
					PropertyID:       rv.PropertyID,
					PropertyName:     rv.PropertyName,
					CategoryAverages: map[string]float64{},
				},
				catSum:   map[string]float64{},
				catCount: map[string]int{},
			}
			byProperty[rv.PropertyID] = acc
		}

		acc.stats.TotalReviews++
		if rv.IsApprovedForPublic {
			acc.stats.ApprovedReviews++
		} else {
			acc.stats.PendingReviews++
		}

		if rv.Rating != nil {
			n := NormalizeFiveStar(rv.Source, *rv.Rating)
			acc.overallSum += n
			acc.overallCount++
			switch rv.Source {
			case domain.SourceGoogle:
				acc.googleSum += n
				acc.stats.GoogleReviewCount++
			case domain.SourceHostaway:
				acc.hostawaySum += n
				acc.stats.HostawayReviewCount++
			}
		}

		// A review contributes to a category's divisor once, even if the
		// payload repeated the category name.
		seen := map[string]bool{}
		for _, c := range rv.Categories {
			acc.catSum[c.Category] += c.Rating
			if !seen[c.Category] {
				acc.catCount[c.Category]++
				seen[c.Category] = true
			}
		}
	}

	out := make([]domain.PropertyStats, 0, len(byProperty))
	for _, acc := range byProperty {
		if acc.overallCount > 0 {
			acc.stats.AverageRating = acc.overallSum / float64(acc.overallCount)
		}
		if acc.stats.GoogleReviewCount > 0 {
			acc.stats.GoogleAverageRating = acc.googleSum / float64(acc.stats.GoogleReviewCount)
		}
		if acc.stats.HostawayReviewCount > 0 {
			acc.stats.HostawayAverageRating = acc.hostawaySum / float64(acc.stats.HostawayReviewCount)
		}
		for cat, sum := range acc.catSum {
			acc.stats.CategoryAverages[cat] = sum / float64(acc.catCount[cat])
		}
		out = append(out, acc.stats)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PropertyID < out[j].PropertyID })
	return out
}
