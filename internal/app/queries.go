package app

import (
	"context"

	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
)

type QueryService struct {
	repo domain.ReviewRepository
}

func NewQueryService(r domain.ReviewRepository) *QueryService {
	return &QueryService{repo: r}
}

var sortKeys = map[string]bool{
	"submittedAt": true,
	"rating":      true,
	"guestName":   true,
	"createdAt":   true,
}

// ListReviews applies paging/sort defaults and clamps before hitting storage.
func (s *QueryService) ListReviews(ctx context.Context, q domain.ReviewsQuery) (domain.ReviewsPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = shared.DefaultPageSize
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > shared.MaxPageSize {
		q.Limit = shared.MaxPageSize
	}
	if !sortKeys[q.SortBy] {
		q.SortBy = shared.DefaultSortBy
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		q.SortOrder = shared.DefaultSortOrder
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{
		Items: items,
		Pagination: domain.Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
			Pages: (total + q.Limit - 1) / q.Limit,
		},
	}, nil
}

// UpdateModeration persists exactly the supplied fields; omitted fields are
// left unchanged. ErrNotFound when the review does not exist.
func (s *QueryService) UpdateModeration(ctx context.Context, id int64, patch domain.ModerationPatch) (domain.Review, error) {
	return s.repo.UpdateModeration(ctx, id, patch)
}

// PropertyStats recomputes aggregates from the full review set on every
// call; nothing is cached, so the result always reflects current storage.
func (s *QueryService) PropertyStats(ctx context.Context) ([]domain.PropertyStats, error) {
	reviews, err := s.repo.AllReviews(ctx)
	if err != nil {
		return nil, err
	}
	return BuildPropertyStats(reviews), nil
}
