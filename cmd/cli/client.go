package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sevigo/page-warden/internal/core"
)

// apiClient talks to a running page-warden service. The review coordinates
// travel in the hostname override parameter, so the CLI works against any
// deployment without DNS for each review host.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// reviewHost renders the synthetic review hostname for the global flags.
func reviewHost() string {
	if reviewID == "" || reviewID == core.DefaultReviewID {
		return fmt.Sprintf("%s--%s--%s", ref, repo, owner)
	}
	return fmt.Sprintf("%s--%s--%s--%s", reviewID, ref, repo, owner)
}

func requireTarget() error {
	if repo == "" || owner == "" {
		return fmt.Errorf("--repo and --owner are required")
	}
	return nil
}

// list fetches the review collection for the configured (repo, owner) key.
func (c *apiClient) list(ctx context.Context) (core.Collection, error) {
	query := url.Values{"hostname": {reviewHost()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Data core.Collection `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.Data, nil
}

// mutate posts one lifecycle operation and returns the service's plain-text
// reply.
func (c *apiClient) mutate(ctx context.Context, verb string, params url.Values) (int, string, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("hostname", reviewHost())

	endpoint := c.baseURL + "/admin"
	if verb != "" {
		endpoint += "/" + verb
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return 0, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, strings.TrimSpace(string(body)), nil
}
