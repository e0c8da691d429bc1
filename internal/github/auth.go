package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/page-warden/internal/config"
)

// NewClient builds an authenticated go-github client from the notifier
// configuration: a GitHub App installation when an App ID is set, otherwise a
// personal access token.
func NewClient(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (*github.Client, error) {
	if cfg.AppID != 0 {
		return newInstallationClient(cfg, logger)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("no GitHub credentials configured")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	return github.NewClient(oauth2.NewClient(ctx, ts)), nil
}

// newInstallationClient authenticates as a GitHub App installation, which lets
// the notifier dispatch events without a long-lived user token.
func newInstallationClient(cfg config.GitHubConfig, logger *slog.Logger) (*github.Client, error) {
	logger.Info("creating GitHub App installation client",
		"app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	transport, err := ghinstallation.NewKeyFromFile(
		http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport from %s: %w", cfg.PrivateKeyPath, err)
	}

	return github.NewClient(&http.Client{Transport: transport}), nil
}
