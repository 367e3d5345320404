package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

// Client consumes the catalog API from the storefront side. Fetch failures
// collapse to ErrUnavailable; callers surface a retry prompt, there is no
// automatic retry.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type listEnvelope struct {
	Success bool             `json:"success"`
	Data    []ProductPayload `json:"data"`
	Count   int              `json:"count"`
}

type itemEnvelope struct {
	Success bool           `json:"success"`
	Data    ProductPayload `json:"data"`
}

// Products fetches the catalog listing, optionally narrowed by q.
func (c *Client) Products(ctx context.Context, q Query) ([]Product, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Trending {
		params.Set("trending", strconv.FormatBool(true))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	target := c.BaseURL + "/products"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	body, err := c.fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var env listEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(env.Data))
	for _, pp := range env.Data {
		out = append(out, pp.product())
	}
	return out, nil
}

func (c *Client) Trending(ctx context.Context) ([]Product, error) {
	return c.Products(ctx, Query{Trending: true})
}

func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	body, err := c.fetch(ctx, c.BaseURL+"/products/"+url.PathEscape(id))
	if err != nil {
		return Product{}, err
	}
	defer body.Close()

	var env itemEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return Product{}, err
	}
	return env.Data.product(), nil
}

func (c *Client) fetch(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// timeouts, refused connections, DNS failures all read the same
		// to the storefront: the catalog is not reachable right now
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		drain(resp.Body)
		return nil, ErrNotFound
	default:
		drain(resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
