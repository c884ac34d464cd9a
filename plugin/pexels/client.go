package pexels

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Brawl345/pexelsbot/utils/httpUtils"
)

const (
	DefaultBaseURL = "https://api.pexels.com/v1"
	RequestTimeout = 10 * time.Second
)

type Client struct {
	baseURL string
	headers map[string]string
	timeout time.Duration
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := map[string]string{}
	if apiKey != "" {
		headers["Authorization"] = apiKey
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: headers,
		timeout: RequestTimeout,
	}
}

// Curated fetches one page of the curated feed.
func (c *Client) Curated(ctx context.Context, page, perPage int) ([]Photo, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return c.get(ctx, "/curated", q)
}

func (c *Client) Search(ctx context.Context, query string, perPage int) ([]Photo, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(perPage))
	return c.get(ctx, "/search", q)
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]Photo, error) {
	var response Response
	err := httpUtils.MakeRequest(ctx, httpUtils.RequestOptions{
		Method:   httpUtils.MethodGet,
		URL:      c.baseURL + endpoint + "?" + q.Encode(),
		Headers:  c.headers,
		Response: &response,
		Timeout:  c.timeout,
	})
	if err != nil {
		return nil, err
	}

	if len(response.Photos) == 0 {
		return nil, ErrNoPhotos
	}

	return response.Photos, nil
}
