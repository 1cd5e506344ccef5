// Package client talks to the marketplace's data and workflow APIs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmalloy/staylist/internal/listing"
)

// Sort orders accepted by FetchFavorites.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

const defaultPerPage = 20

// ErrListingGone means the listing is no longer active on the
// marketplace; removal requests for it report 404/410.
var ErrListingGone = errors.New("listing no longer available")

// StatusError is a non-success response from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "server error: " + http.StatusText(e.Code)
}

// Client is an HTTP client for the marketplace API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// New creates a marketplace API client.
func New(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// constraint is one filter clause for the data API.
type constraint struct {
	Key   string `json:"key"`
	Type  string `json:"constraint_type"`
	Value any    `json:"value"`
}

// listingsResponse is the data API's envelope for listing queries.
type listingsResponse struct {
	Response struct {
		Results []map[string]any `json:"results"`
		Count   int              `json:"count"`
	} `json:"response"`
}

// FetchFavorites returns one page of the user's favorited listings,
// filtered to active, approved listings and sorted by nightly price.
// Pages are 1-based.
func (c *Client) FetchFavorites(ctx context.Context, userID string, page, perPage int, sortBy string) (*listing.Page, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	constraints, err := json.Marshal([]constraint{
		{Key: "favorited_by", Type: "contains", Value: userID},
		{Key: "Active", Type: "equals", Value: true},
		{Key: "Approved", Type: "equals", Value: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling constraints: %w", err)
	}

	params := url.Values{
		"constraints": {string(constraints)},
		"sort_field":  {"lister_price_display"},
		"descending":  {strconv.FormatBool(sortBy == SortPriceDesc)},
		"cursor":      {strconv.Itoa((page - 1) * perPage)},
		"limit":       {strconv.Itoa(perPage)},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/obj/listing?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var body listingsResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}

	listings := make([]*listing.Listing, 0, len(body.Response.Results))
	for _, raw := range body.Response.Results {
		listings = append(listings, listing.FromRemote(raw))
	}

	total := body.Response.Count
	if total == 0 {
		total = len(listings)
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	return &listing.Page{
		Listings: listings,
		Pagination: listing.Pagination{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
		},
	}, nil
}

// RemoveFavorite removes a listing from the user's favorites. A
// 404/410 response maps to ErrListingGone so callers can tell the user
// the listing was delisted rather than that the request failed.
func (c *Client) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	err := c.postWorkflow(ctx, "/wf/remove-from-favorites", map[string]string{
		"user_id":    userID,
		"listing_id": listingID,
	})
	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusNotFound || se.Code == http.StatusGone) {
		return fmt.Errorf("removing favorite: %w", ErrListingGone)
	}
	return err
}

// AddFavorite adds a listing to the user's favorites.
func (c *Client) AddFavorite(ctx context.Context, userID, listingID string) error {
	return c.postWorkflow(ctx, "/wf/add-to-favorites", map[string]string{
		"user_id":    userID,
		"listing_id": listingID,
	})
}

// SubscribeToNewListings signs the user up for new-listing emails.
func (c *Client) SubscribeToNewListings(ctx context.Context, email, userID string) error {
	return c.postWorkflow(ctx, "/wf/subscribe-new-listings", map[string]string{
		"email":   email,
		"user_id": userID,
	})
}

// postWorkflow performs a POST to a workflow endpoint with a JSON body.
func (c *Client) postWorkflow(ctx context.Context, path string, body map[string]string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

// do executes a request with auth and request-id headers and decodes
// the response into result when non-nil.
func (c *Client) do(req *http.Request, result any) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	slog.Debug("api request", "method", req.Method, "url", req.URL.String(), "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Warn("api error response", "status", resp.StatusCode, "request_id", requestID)
		se := &StatusError{Code: resp.StatusCode}
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Error != "" {
				se.Message = errResp.Error
			} else if errResp.Message != "" {
				se.Message = errResp.Message
			}
		}
		return se
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
