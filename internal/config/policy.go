package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrPolicyNotFound is returned when no policy file exists at the
	// configured path; callers fall back to defaults.
	ErrPolicyNotFound = errors.New("policy file not found")
	// ErrPolicyParsing wraps YAML parse failures.
	ErrPolicyParsing = errors.New("policy parsing failed")
)

// RepoPolicy tunes review handling for one owner/repo pair.
type RepoPolicy struct {
	// Notify toggles change notifications for the repo.
	Notify *bool `yaml:"notify"`
	// MaxPages caps the number of pages per review; 0 means unlimited.
	MaxPages *int `yaml:"maxPages"`
}

// Policies holds the per-repo review policies plus defaults applied to repos
// without an entry.
type Policies struct {
	Defaults RepoPolicy            `yaml:"defaults"`
	Repos    map[string]RepoPolicy `yaml:"repos"`
}

// NotifyEnabled resolves the notification toggle for owner/repo.
func (p *Policies) NotifyEnabled(owner, repo string) bool {
	if rp, ok := p.Repos[owner+"/"+repo]; ok && rp.Notify != nil {
		return *rp.Notify
	}
	if p.Defaults.Notify != nil {
		return *p.Defaults.Notify
	}
	return true
}

// PageLimit resolves the per-review page cap for owner/repo; 0 means no cap.
func (p *Policies) PageLimit(owner, repo string) int {
	if rp, ok := p.Repos[owner+"/"+repo]; ok && rp.MaxPages != nil {
		return *rp.MaxPages
	}
	if p.Defaults.MaxPages != nil {
		return *p.Defaults.MaxPages
	}
	return 0
}

// DefaultPolicies returns the policy set used when no file is configured:
// notifications on, no page cap.
func DefaultPolicies() *Policies {
	return &Policies{}
}

// LoadPolicies loads and parses the review policy file at path. An empty path
// yields the defaults; a missing file yields defaults plus ErrPolicyNotFound
// so callers can log it.
func LoadPolicies(path string) (*Policies, error) {
	if path == "" {
		return DefaultPolicies(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPolicies(), ErrPolicyNotFound
		}
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	policies := DefaultPolicies()
	if err := yaml.Unmarshal(data, policies); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPolicyParsing, err)
	}
	return policies, nil
}
