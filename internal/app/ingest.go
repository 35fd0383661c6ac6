package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
)

// IngestResult reports one ingestion run: the stored reviews (existing rows
// are returned as-is on dedup hits) and which dataset actually served them.
type IngestResult struct {
	Reviews []domain.Review
	Source  string // "mock" or "api"
	Created int
}

type IngestionService struct {
	hostaway domain.HostawayClient
	places   domain.PlacesClient
	placeIDs domain.PlaceIDStore
	repo     domain.ReviewRepository

	hostawayMock []domain.HostawayReview
	googleMock   []domain.GoogleReview
}

func NewIngestionService(
	h domain.HostawayClient,
	p domain.PlacesClient,
	ids domain.PlaceIDStore,
	repo domain.ReviewRepository,
	hostawayMock []domain.HostawayReview,
	googleMock []domain.GoogleReview,
) *IngestionService {
	return &IngestionService{
		hostaway:     h,
		places:       p,
		placeIDs:     ids,
		repo:         repo,
		hostawayMock: hostawayMock,
		googleMock:   googleMock,
	}
}

// IngestHostaway fetches the account's reviews, normalizes them, and stores
// each through the atomic insert-if-absent. Mock data is used only when
// explicitly requested; a failing or empty upstream in real mode degrades to
// an empty set.
func (s *IngestionService) IngestHostaway(ctx context.Context, useMock bool) (IngestResult, error) {
	res := IngestResult{Source: "api"}

	var raws []domain.HostawayReview
	if useMock {
		raws = s.hostawayMock
		res.Source = "mock"
	} else {
		fetched, err := s.hostaway.GetReviews(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("hostaway fetch failed, continuing with empty set")
			fetched = nil
		}
		raws = fetched
	}

	res.Reviews = make([]domain.Review, 0, len(raws))
	for _, raw := range raws {
		rv, err := MapHostawayReview(raw)
		if err != nil {
			log.Warn().Err(err).Msg("skipping hostaway review")
			continue
		}
		stored, created, err := s.repo.InsertIfAbsent(ctx, rv)
		if err != nil {
			log.Warn().Err(err).Str("guest", rv.GuestName).Msg("store hostaway review failed")
			continue
		}
		if created {
			res.Created++
		}
		res.Reviews = append(res.Reviews, stored)
	}
	return res, nil
}

// IngestGoogle ingests Google reviews for one property, or for every
// distinct property in storage when propertyID is empty. An unknown
// propertyID is ErrNotFound.
func (s *IngestionService) IngestGoogle(ctx context.Context, propertyID string, useMock bool) (IngestResult, error) {
	res := IngestResult{Source: "api"}
	if useMock {
		res.Source = "mock"
	}

	var targets []domain.PropertyRef
	if propertyID != "" {
		name, err := s.repo.PropertyName(ctx, propertyID)
		if err != nil {
			return IngestResult{}, err
		}
		targets = []domain.PropertyRef{{ID: propertyID, Name: name}}
	} else {
		refs, err := s.repo.DistinctProperties(ctx)
		if err != nil {
			return IngestResult{}, err
		}
		targets = refs
	}

	for _, t := range targets {
		stored, created := s.ingestGoogleProperty(ctx, t.ID, t.Name, useMock)
		res.Reviews = append(res.Reviews, stored...)
		res.Created += created
	}
	return res, nil
}

func (s *IngestionService) ingestGoogleProperty(ctx context.Context, propertyID, propertyName string, useMock bool) ([]domain.Review, int) {
	var raws []domain.GoogleReview
	if useMock {
		raws = s.googleMock
	} else {
		fetched, err := s.places.PropertyReviews(ctx, propertyID, propertyName)
		if err != nil {
			log.Warn().Err(err).Str("property", propertyID).Msg("google fetch failed, continuing with empty set")
			fetched = nil
		}
		raws = fetched
	}

	out := make([]domain.Review, 0, len(raws))
	created := 0
	for _, raw := range raws {
		rv, err := MapGoogleReview(raw, propertyID, propertyName)
		if err != nil {
			log.Warn().Err(err).Msg("skipping google review")
			continue
		}
		stored, isNew, err := s.repo.InsertIfAbsent(ctx, rv)
		if err != nil {
			log.Warn().Err(err).Str("guest", rv.GuestName).Msg("store google review failed")
			continue
		}
		if isNew {
			created++
		}
		out = append(out, stored)
	}
	return out, created
}

// RegisterGoogleProperty pins (or discovers) a place ID for a property and
// ingests its reviews in real mode.
func (s *IngestionService) RegisterGoogleProperty(ctx context.Context, propertyID, propertyName, placeID string) (IngestResult, string, error) {
	if placeID == "" {
		found, err := s.places.FindPlaceID(ctx, propertyName, "")
		if err != nil {
			return IngestResult{}, "", fmt.Errorf("place lookup for %q: %w", propertyName, err)
		}
		placeID = found
	}
	if err := s.placeIDs.Set(ctx, propertyID, placeID); err != nil {
		return IngestResult{}, "", err
	}

	stored, created := s.ingestGoogleProperty(ctx, propertyID, propertyName, false)
	return IngestResult{Reviews: stored, Source: "api", Created: created}, placeID, nil
}

// PlaceIDState is the admin view over the injected place-ID store.
type PlaceIDState struct {
	PropertyAddresses  map[string]PropertyAddress `json:"propertyAddresses"`
	DiscoveredPlaceIDs map[string]string          `json:"discoveredPlaceIds"`
	Refreshed          bool                       `json:"refreshed"`
}

type PropertyAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// PlaceIDs reports the registered properties and discovered place IDs.
// refresh re-runs discovery for every registered property.
func (s *IngestionService) PlaceIDs(ctx context.Context, refresh bool) (PlaceIDState, error) {
	if refresh {
		for _, p := range shared.Properties {
			placeID, err := s.places.FindPlaceID(ctx, p.Name, p.Address)
			if err != nil {
				log.Warn().Err(err).Str("property", p.ID).Msg("place id refresh failed")
				continue
			}
			if err := s.placeIDs.Set(ctx, p.ID, placeID); err != nil {
				return PlaceIDState{}, err
			}
		}
	}

	discovered, err := s.placeIDs.All(ctx)
	if err != nil {
		return PlaceIDState{}, err
	}
	addrs := make(map[string]PropertyAddress, len(shared.Properties))
	for _, p := range shared.Properties {
		addrs[p.ID] = PropertyAddress{Name: p.Name, Address: p.Address}
	}
	return PlaceIDState{PropertyAddresses: addrs, DiscoveredPlaceIDs: discovered, Refreshed: refresh}, nil
}

func (s *IngestionService) SetPlaceID(ctx context.Context, propertyID, placeID string) error {
	return s.placeIDs.Set(ctx, propertyID, placeID)
}

// CleanupMockGoogle removes google-source rows whose guest name matches the
// fixed mock dataset and reports how many were deleted.
func (s *IngestionService) CleanupMockGoogle(ctx context.Context) (int64, error) {
	names := make([]string, 0, len(s.googleMock))
	for _, r := range s.googleMock {
		names = append(names, r.AuthorName)
	}
	return s.repo.DeleteByGuestNames(ctx, domain.SourceGoogle, names)
}
