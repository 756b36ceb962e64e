package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"marquee/models"
)

const (
	defaultTimeout       = 15 * time.Second
	categoryRetryBudget  = 3
	categoryRetryBackoff = 500 * time.Millisecond
)

// Client is the HTTP implementation of Gateway.
//
// Page fetches are deliberately single-attempt: the pagination controller's
// contract is revert-on-error with retry left to the next scroll trigger.
// Category fetches happen once per full refresh, so transient blips there
// are retried before failing the whole refresh.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a gateway client for the given API base URL, e.g.
// "https://api.example.com/v1".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// FetchPage retrieves one page of items for a content stream.
func (c *Client) FetchPage(ctx context.Context, mediaType models.MediaType, page int) ([]models.MediaItem, error) {
	endpoint := fmt.Sprintf("%s/%s?page=%d", c.baseURL, streamPath(mediaType), page)

	var items []models.MediaItem
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchCategories retrieves the category list, retrying transient failures.
func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	endpoint := c.baseURL + "/categories"

	var categories []models.Category
	err := retry.Do(
		func() error {
			return c.getJSON(ctx, endpoint, &categories)
		},
		retry.Context(ctx),
		retry.Attempts(categoryRetryBudget),
		retry.Delay(categoryRetryBackoff),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{URL: endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &NetworkError{URL: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func streamPath(mediaType models.MediaType) string {
	if mediaType == models.MediaTypeSeries {
		return "series"
	}
	return "movies"
}
