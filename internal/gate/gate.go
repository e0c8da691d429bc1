// Package gate consults the upstream content-authorization surface before a
// review mutation is allowed to run.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sevigo/page-warden/internal/config"
	"github.com/sevigo/page-warden/internal/core"
)

// Gate authorizes a request against the content surface for a ref/repo/owner
// triple. Authorize returns core.ErrUnauthorized when the surface denies the
// caller.
type Gate interface {
	Authorize(ctx context.Context, rctx core.RequestContext, authorization string) error
}

type httpGate struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

type allowAll struct{}

func (allowAll) Authorize(context.Context, core.RequestContext, string) error { return nil }

// NewGate builds the access gate from configuration. An empty gate URL
// disables the check entirely.
func NewGate(cfg config.GateConfig, logger *slog.Logger) Gate {
	if cfg.URL == "" {
		logger.Warn("access gate is not configured, mutations are unauthenticated")
		return allowAll{}
	}
	return &httpGate{
		baseURL: cfg.URL,
		client: &http.Client{
			Timeout: cfg.Timeout,
			// A redirect from the auth surface is a login bounce, i.e. a denial.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// Authorize re-validates the caller against the content surface, forwarding
// the inbound Authorization header. Redirects and 401/403 map to
// core.ErrUnauthorized; anything else unexpected is a plain error.
func (g *httpGate) Authorize(ctx context.Context, rctx core.RequestContext, authorization string) error {
	checkURL := fmt.Sprintf("%s/%s/%s/%s", g.baseURL,
		url.PathEscape(rctx.Owner), url.PathEscape(rctx.Repo), url.PathEscape(rctx.Ref))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build gate request: %w", err)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gate check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 300 && resp.StatusCode < 400,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		g.logger.Debug("access gate denied request",
			"owner", rctx.Owner, "repo", rctx.Repo, "ref", rctx.Ref, "status", resp.StatusCode)
		return core.ErrUnauthorized
	default:
		return fmt.Errorf("gate check returned unexpected status %d", resp.StatusCode)
	}
}
