package app_test

import (
	"context"
	"fmt"
	"sync"

	"flex_reviews/internal/domain"
)

// ---- in-memory repository ----

type fakeRepo struct {
	mu      sync.Mutex
	reviews []domain.Review
	nextID  int64

	lastQuery domain.ReviewsQuery
}

func naturalKey(rv domain.Review) string {
	return fmt.Sprintf("%s|%s|%d|%s", rv.Source, rv.GuestName, rv.SubmittedAt.Unix(), rv.PropertyID)
}

func (f *fakeRepo) InsertIfAbsent(ctx context.Context, rv domain.Review) (domain.Review, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := naturalKey(rv)
	for _, existing := range f.reviews {
		if naturalKey(existing) == key {
			return existing, false, nil
		}
	}
	f.nextID++
	rv.ID = f.nextID
	for i := range rv.Categories {
		rv.Categories[i].ReviewID = rv.ID
	}
	f.reviews = append(f.reviews, rv)
	return rv, true, nil
}

func (f *fakeRepo) List(ctx context.Context, q domain.ReviewsQuery) ([]domain.Review, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	total := len(f.reviews)
	start := (q.Page - 1) * q.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	out := make([]domain.Review, end-start)
	copy(out, f.reviews[start:end])
	return out, total, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rv := range f.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}
	return domain.Review{}, domain.ErrNotFound
}

func (f *fakeRepo) UpdateModeration(ctx context.Context, id int64, patch domain.ModerationPatch) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			if patch.IsApprovedForPublic != nil {
				f.reviews[i].IsApprovedForPublic = *patch.IsApprovedForPublic
			}
			if patch.ManagerNotes != nil {
				notes := *patch.ManagerNotes
				f.reviews[i].ManagerNotes = &notes
			}
			return f.reviews[i], nil
		}
	}
	return domain.Review{}, domain.ErrNotFound
}

func (f *fakeRepo) AllReviews(ctx context.Context) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Review, len(f.reviews))
	copy(out, f.reviews)
	return out, nil
}

func (f *fakeRepo) DistinctProperties(ctx context.Context) ([]domain.PropertyRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []domain.PropertyRef
	for _, rv := range f.reviews {
		if !seen[rv.PropertyID] {
			seen[rv.PropertyID] = true
			out = append(out, domain.PropertyRef{ID: rv.PropertyID, Name: rv.PropertyName})
		}
	}
	return out, nil
}

func (f *fakeRepo) PropertyName(ctx context.Context, propertyID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rv := range f.reviews {
		if rv.PropertyID == propertyID {
			return rv.PropertyName, nil
		}
	}
	return "", domain.ErrNotFound
}

func (f *fakeRepo) DeleteByGuestNames(ctx context.Context, src domain.Source, names []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match := map[string]bool{}
	for _, n := range names {
		match[n] = true
	}
	var kept []domain.Review
	var deleted int64
	for _, rv := range f.reviews {
		if rv.Source == src && match[rv.GuestName] {
			deleted++
			continue
		}
		kept = append(kept, rv)
	}
	f.reviews = kept
	return deleted, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviews)
}

// ---- source client fakes ----

type fakeHostaway struct {
	reviews []domain.HostawayReview
	err     error
}

func (f *fakeHostaway) GetReviews(ctx context.Context) ([]domain.HostawayReview, error) {
	return f.reviews, f.err
}

type fakePlaces struct {
	reviews map[string][]domain.GoogleReview
	err     error

	findCalls int
}

func (f *fakePlaces) PropertyReviews(ctx context.Context, propertyID, propertyName string) ([]domain.GoogleReview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews[propertyID], nil
}

func (f *fakePlaces) FindPlaceID(ctx context.Context, name, address string) (string, error) {
	f.findCalls++
	return "place-" + name, nil
}

type fakePlaceIDs struct {
	mu   sync.Mutex
	data map[string]string
}

func (f *fakePlaceIDs) Get(ctx context.Context, propertyID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[propertyID]
	return v, ok, nil
}

func (f *fakePlaceIDs) Set(ctx context.Context, propertyID, placeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[propertyID] = placeID
	return nil
}

func (f *fakePlaceIDs) All(ctx context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.data))
	for k, v := range f.data {
		out[k] = v
	}
	return out, nil
}
