// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultReviewID names the reserved baseline review. It always represents the
// unreviewed page set for a site and is reset, never deleted, on approval.
const DefaultReviewID = "default"

// Status is the lifecycle state of a review.
type Status string

const (
	// StatusOpen marks a review that is still collecting pages.
	StatusOpen Status = "open"
	// StatusSubmitted marks a review that is awaiting approval or rejection.
	StatusSubmitted Status = "submitted"
)

// Review is a proposed batch of page changes awaiting approval, unique by
// ReviewID within its (repo, owner) collection. Pages keeps insertion order and
// holds no duplicates; page values must not contain commas, which are the
// delimiter in the persisted form.
type Review struct {
	ReviewID    string
	Status      Status
	Description string
	Pages       []string
}

// reviewJSON is the persisted and API wire form of a Review. Pages travel as a
// single comma-joined string, matching what review UIs consume directly.
type reviewJSON struct {
	ReviewID    string `json:"reviewId"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Pages       string `json:"pages"`
}

// MarshalJSON encodes the review in its wire form.
func (r *Review) MarshalJSON() ([]byte, error) {
	return json.Marshal(reviewJSON{
		ReviewID:    r.ReviewID,
		Status:      string(r.Status),
		Description: r.Description,
		Pages:       JoinPages(r.Pages),
	})
}

// UnmarshalJSON decodes the wire form and validates the record shape.
func (r *Review) UnmarshalJSON(data []byte) error {
	var w reviewJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ReviewID == "" {
		return fmt.Errorf("review record is missing a reviewId")
	}
	switch Status(w.Status) {
	case StatusOpen, StatusSubmitted:
	default:
		return fmt.Errorf("review %q has unknown status %q", w.ReviewID, w.Status)
	}
	r.ReviewID = w.ReviewID
	r.Status = Status(w.Status)
	r.Description = w.Description
	r.Pages = SplitPages(w.Pages)
	return nil
}

// HasPage reports whether the review already contains the exact page value.
func (r *Review) HasPage(page string) bool {
	for _, p := range r.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// AddPage appends a page if it is not already present.
func (r *Review) AddPage(page string) {
	if !r.HasPage(page) {
		r.Pages = append(r.Pages, page)
	}
}

// Collection is the ordered set of reviews persisted under one (repo, owner)
// key. It is the unit of persistence: every mutation rewrites the whole
// collection.
type Collection []*Review

// Find returns the review with the given ID, or nil if the collection holds none.
func (c Collection) Find(reviewID string) *Review {
	for _, r := range c {
		if r.ReviewID == reviewID {
			return r
		}
	}
	return nil
}

// Remove drops the review with the given ID, preserving the order of the rest.
// It reports whether a review was removed.
func (c *Collection) Remove(reviewID string) bool {
	for i, r := range *c {
		if r.ReviewID == reviewID {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
	}
	return false
}

// EncodeCollection serializes the collection to its persisted JSON form.
func EncodeCollection(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	return json.Marshal(c)
}

// DecodeCollection parses a persisted collection and enforces ReviewID
// uniqueness, guarding against corrupted rows.
func DecodeCollection(data []byte) (Collection, error) {
	if len(data) == 0 {
		return Collection{}, nil
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode review collection: %w", err)
	}
	seen := make(map[string]struct{}, len(c))
	for _, r := range c {
		if _, dup := seen[r.ReviewID]; dup {
			return nil, fmt.Errorf("review collection contains duplicate reviewId %q", r.ReviewID)
		}
		seen[r.ReviewID] = struct{}{}
	}
	return c, nil
}

// SplitPages turns a comma-joined page list into a trimmed, de-duplicated slice,
// keeping first-seen order.
func SplitPages(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	pages := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		pages = append(pages, p)
	}
	return pages
}

// JoinPages renders a page slice back into the comma-joined persisted form.
func JoinPages(pages []string) string {
	return strings.Join(pages, ",")
}
