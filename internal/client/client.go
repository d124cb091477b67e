package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yukikurage/taskboard/internal/config"
	"github.com/yukikurage/taskboard/internal/constants"
)

// Client calls the task board API. Each call returns the decoded body, a
// *ConnectivityError or an *APIError. Failed calls are never retried.
type Client struct {
	cfg        *config.ClientConfig
	httpClient *http.Client
}

func New(cfg *config.ClientConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// BaseURL is the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.cfg.APIBaseURL
}

// ListOptions selects a window of a collection.
type ListOptions struct {
	Skip   int
	Limit  int
	Expand []string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(o.Skip))
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if len(o.Expand) > 0 {
		q.Set("expand", strings.Join(o.Expand, ","))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.cfg.Endpoint(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectivityError{URL: c.cfg.APIBaseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads the error envelope. "detail" is preferred, "message"
// is the fallback, and a body that is not JSON yields an empty reason.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Reason = envelope.Detail
		if apiErr.Reason == "" {
			apiErr.Reason = envelope.Message
		}
	}
	return apiErr
}

// Health calls GET /health with a short deadline of its own.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.HealthTimeout)
	defer cancel()

	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "health", nil, nil, &out)
}
