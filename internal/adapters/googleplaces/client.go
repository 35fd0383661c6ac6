// Package googleplaces talks to the Google Places text-search and details
// endpoints and resolves property -> place ID through an injected store.
package googleplaces

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/fetch"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
)

type Client struct {
	base  string
	key   string
	f     *fetch.Client
	store domain.PlaceIDStore
}

func New(base, key string, rps int, store domain.PlaceIDStore) *Client {
	return &Client{
		base:  base,
		key:   key,
		f:     fetch.New("google_places", rps),
		store: store,
	}
}

type searchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
		Name    string `json:"name"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Name             string                `json:"name"`
		FormattedAddress string                `json:"formatted_address"`
		Rating           float64               `json:"rating"`
		UserRatingsTotal int                   `json:"user_ratings_total"`
		Reviews          []domain.GoogleReview `json:"reviews"`
	} `json:"result"`
}

// FindPlaceID runs a text search for the property and returns the first
// match. ErrNotFound when the search comes back empty.
func (c *Client) FindPlaceID(ctx context.Context, name, address string) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("googleplaces: API key is not configured")
	}
	query := name
	if address != "" {
		query = name + " " + address
	}
	u := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		c.base, url.QueryEscape(query), url.QueryEscape(c.key))

	var out searchResponse
	if err := c.f.GetJSON(ctx, "textsearch", u, nil, &out); err != nil {
		return "", err
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return "", fmt.Errorf("place search %q: %w", query, domain.ErrNotFound)
	}
	return out.Results[0].PlaceID, nil
}

// PropertyReviews returns the Google reviews for a property. The place ID
// comes from the injected store; on a miss we discover it from the known
// property directory and remember it. Unresolvable properties yield an empty
// slice so ingestion can skip them without failing the batch.
func (c *Client) PropertyReviews(ctx context.Context, propertyID, propertyName string) ([]domain.GoogleReview, error) {
	if c.key == "" {
		return nil, fmt.Errorf("googleplaces: API key is not configured")
	}
	placeID, ok, err := c.store.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		name, address := propertyName, ""
		if p, known := shared.PropertyByID(propertyID); known {
			name, address = p.Name, p.Address
		}
		found, err := c.FindPlaceID(ctx, name, address)
		if err != nil {
			log.Warn().Err(err).Str("property", propertyID).Msg("no place id for property")
			return nil, nil
		}
		if err := c.store.Set(ctx, propertyID, found); err != nil {
			return nil, err
		}
		placeID = found
	}

	u := fmt.Sprintf("%s/details/json?place_id=%s&fields=%s&key=%s",
		c.base,
		url.QueryEscape(placeID),
		url.QueryEscape("name,formatted_address,rating,user_ratings_total,reviews,geometry"),
		url.QueryEscape(c.key))

	var out detailsResponse
	if err := c.f.GetJSON(ctx, "details", u, nil, &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" {
		return nil, fmt.Errorf("place details %s: status %q", placeID, out.Status)
	}
	return out.Result.Reviews, nil
}
