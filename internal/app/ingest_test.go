package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"flex_reviews/internal/adapters/googleplaces"
	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func newIngestion(repo *fakeRepo, h *fakeHostaway, p *fakePlaces, ids *fakePlaceIDs) *app.IngestionService {
	return app.NewIngestionService(h, p, ids, repo, hostaway.MockReviews, googleplaces.MockReviews)
}

func TestIngestHostaway_MockIsDeduplicated(t *testing.T) {
	repo := &fakeRepo{}
	svc := newIngestion(repo, &fakeHostaway{}, &fakePlaces{}, &fakePlaceIDs{})
	ctx := context.Background()

	first, err := svc.IngestHostaway(ctx, true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if first.Source != "mock" {
		t.Fatalf("source: %s", first.Source)
	}
	if first.Created != len(hostaway.MockReviews) {
		t.Fatalf("created %d, want %d", first.Created, len(hostaway.MockReviews))
	}
	before := repo.count()

	second, err := svc.IngestHostaway(ctx, true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if second.Created != 0 {
		t.Fatalf("second run created %d rows", second.Created)
	}
	if repo.count() != before {
		t.Fatalf("stored set grew: %d -> %d", before, repo.count())
	}
	if len(second.Reviews) != len(first.Reviews) {
		t.Fatalf("second run returned %d reviews, want %d", len(second.Reviews), len(first.Reviews))
	}
}

func TestIngestHostaway_RealFailureDegradesToEmpty(t *testing.T) {
	repo := &fakeRepo{}
	svc := newIngestion(repo, &fakeHostaway{err: errors.New("boom")}, &fakePlaces{}, &fakePlaceIDs{})

	res, err := svc.IngestHostaway(context.Background(), false)
	if err != nil {
		t.Fatalf("upstream failure must not propagate: %v", err)
	}
	if len(res.Reviews) != 0 || res.Source != "api" {
		t.Fatalf("expected empty api result, got %+v", res)
	}
	if repo.count() != 0 {
		t.Fatal("nothing should be stored on upstream failure")
	}
}

func TestIngestHostaway_SkipsBadRecords(t *testing.T) {
	repo := &fakeRepo{}
	h := &fakeHostaway{reviews: []domain.HostawayReview{
		{GuestName: "Ok Guest", ListingName: "Flat A", SubmittedAt: "2024-01-01 10:00:00"},
		{GuestName: "Broken", ListingName: "Flat A", SubmittedAt: "not-a-date"},
	}}
	svc := newIngestion(repo, h, &fakePlaces{}, &fakePlaceIDs{})

	res, err := svc.IngestHostaway(context.Background(), false)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(res.Reviews) != 1 || res.Reviews[0].GuestName != "Ok Guest" {
		t.Fatalf("expected only the good record, got %+v", res.Reviews)
	}
}

func TestIngestGoogle_UnknownPropertyNotFound(t *testing.T) {
	svc := newIngestion(&fakeRepo{}, &fakeHostaway{}, &fakePlaces{}, &fakePlaceIDs{})
	_, err := svc.IngestGoogle(context.Background(), "nope", true)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIngestGoogle_AllPropertiesMock(t *testing.T) {
	repo := &fakeRepo{}
	svc := newIngestion(repo, &fakeHostaway{}, &fakePlaces{}, &fakePlaceIDs{})
	ctx := context.Background()

	// seed distinct properties via hostaway mock
	if _, err := svc.IngestHostaway(ctx, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	props, _ := repo.DistinctProperties(ctx)

	res, err := svc.IngestGoogle(ctx, "", true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := len(props) * len(googleplaces.MockReviews)
	if res.Created != want {
		t.Fatalf("created %d google rows, want %d", res.Created, want)
	}

	// identical second run must not grow the stored set
	before := repo.count()
	res2, err := svc.IngestGoogle(ctx, "", true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res2.Created != 0 || repo.count() != before {
		t.Fatalf("dedup failed: created=%d count %d->%d", res2.Created, before, repo.count())
	}
}

func TestIngestGoogle_RealFailureDegradesToEmpty(t *testing.T) {
	repo := &fakeRepo{}
	svc := newIngestion(repo, &fakeHostaway{}, &fakePlaces{err: errors.New("quota")}, &fakePlaceIDs{})
	ctx := context.Background()
	if _, err := svc.IngestHostaway(ctx, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before := repo.count()

	res, err := svc.IngestGoogle(ctx, "", false)
	if err != nil {
		t.Fatalf("places failure must not propagate: %v", err)
	}
	if len(res.Reviews) != 0 || repo.count() != before {
		t.Fatalf("expected degraded empty result, got %+v", res)
	}
}

func TestRegisterGoogleProperty_PinsPlaceID(t *testing.T) {
	repo := &fakeRepo{}
	ids := &fakePlaceIDs{}
	places := &fakePlaces{reviews: map[string][]domain.GoogleReview{
		"flat-a": {{AuthorName: "Zoe", Rating: 5, Text: "nice", Time: 1700000000}},
	}}
	svc := newIngestion(repo, &fakeHostaway{}, places, ids)

	res, placeID, err := svc.RegisterGoogleProperty(context.Background(), "flat-a", "Flat A", "ChIJ123")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if placeID != "ChIJ123" {
		t.Fatalf("placeID: %s", placeID)
	}
	if v, ok, _ := ids.Get(context.Background(), "flat-a"); !ok || v != "ChIJ123" {
		t.Fatalf("store not updated: %q %v", v, ok)
	}
	if len(res.Reviews) != 1 || res.Reviews[0].GuestName != "Zoe" {
		t.Fatalf("reviews: %+v", res.Reviews)
	}
}

func TestRegisterGoogleProperty_DiscoversWhenMissing(t *testing.T) {
	ids := &fakePlaceIDs{}
	places := &fakePlaces{}
	svc := newIngestion(&fakeRepo{}, &fakeHostaway{}, places, ids)

	_, placeID, err := svc.RegisterGoogleProperty(context.Background(), "flat-a", "Flat A", "")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if places.findCalls != 1 || placeID != "place-Flat A" {
		t.Fatalf("discovery: calls=%d placeID=%q", places.findCalls, placeID)
	}
}

func TestPlaceIDs_Refresh(t *testing.T) {
	ids := &fakePlaceIDs{}
	places := &fakePlaces{}
	svc := newIngestion(&fakeRepo{}, &fakeHostaway{}, places, ids)

	state, err := svc.PlaceIDs(context.Background(), true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !state.Refreshed {
		t.Fatal("refreshed flag")
	}
	if len(state.DiscoveredPlaceIDs) != len(state.PropertyAddresses) {
		t.Fatalf("discovered %d of %d", len(state.DiscoveredPlaceIDs), len(state.PropertyAddresses))
	}
}

func TestCleanupMockGoogle(t *testing.T) {
	repo := &fakeRepo{}
	svc := newIngestion(repo, &fakeHostaway{}, &fakePlaces{}, &fakePlaceIDs{})
	ctx := context.Background()

	if _, err := svc.IngestHostaway(ctx, true); err != nil {
		t.Fatalf("seed hostaway: %v", err)
	}
	hostawayCount := repo.count()
	props, _ := repo.DistinctProperties(ctx)
	if _, err := svc.IngestGoogle(ctx, "", true); err != nil {
		t.Fatalf("seed google: %v", err)
	}

	// a real google review outside the demo fingerprint must survive
	realGoogle := domain.Review{
		Source: domain.SourceGoogle, GuestName: "Regular Guest",
		PropertyID: props[0].ID, PropertyName: props[0].Name,
		SubmittedAt: mustTime(t, "2024-05-01T00:00:00Z"),
	}
	if _, _, err := repo.InsertIfAbsent(ctx, realGoogle); err != nil {
		t.Fatalf("seed real google: %v", err)
	}

	deleted, err := svc.CleanupMockGoogle(ctx)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	wantDeleted := int64(len(props) * len(googleplaces.MockReviews))
	if deleted != wantDeleted {
		t.Fatalf("deleted %d, want %d", deleted, wantDeleted)
	}
	if repo.count() != hostawayCount+1 {
		t.Fatalf("survivors: %d, want %d", repo.count(), hostawayCount+1)
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}
