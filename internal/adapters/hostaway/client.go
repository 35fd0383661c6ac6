// Package hostaway talks to the Hostaway reviews API.
package hostaway

import (
	"context"
	"fmt"
	"net/http"

	"flex_reviews/internal/adapters/fetch"
	"flex_reviews/internal/domain"
)

type Client struct {
	base    string
	token   string
	account string
	f       *fetch.Client
}

func New(base, token, accountID string, rps int) *Client {
	return &Client{
		base:    base,
		token:   token,
		account: accountID,
		f:       fetch.New("hostaway", rps),
	}
}

type reviewsResponse struct {
	Status string                  `json:"status"`
	Result []domain.HostawayReview `json:"result"`
}

// GetReviews needs a configured API key; mock-mode deployments never get
// here, so the check lives at call time rather than construction.
func (c *Client) GetReviews(ctx context.Context) ([]domain.HostawayReview, error) {
	if c.token == "" {
		return nil, fmt.Errorf("hostaway: API key is not configured")
	}
	url := c.base + "/reviews"
	if c.account != "" {
		url += "?accountId=" + c.account
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.token)

	var out reviewsResponse
	if err := c.f.GetJSON(ctx, "reviews", url, header, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("hostaway: status %q", out.Status)
	}
	return out.Result, nil
}
