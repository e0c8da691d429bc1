package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/page-warden/internal/core"
)

func rctx(reviewID string) core.RequestContext {
	return core.RequestContext{ReviewID: reviewID, Ref: "main", Repo: "site", Owner: "acme"}
}

func openReview(id string, pages ...string) *core.Review {
	return &core.Review{ReviewID: id, Status: core.StatusOpen, Pages: pages}
}

func submittedReview(id string, pages ...string) *core.Review {
	return &core.Review{ReviewID: id, Status: core.StatusSubmitted, Pages: pages}
}

func TestUpdateCreatesReview(t *testing.T) {
	e := NewEngine()
	col := core.Collection{}

	out := e.Apply(OpUpdate, rctx("feature-1"), &col, Params{Description: "homepage rework", Pages: "/index,/about"})

	assert.Equal(t, 200, out.Code)
	assert.True(t, out.Mutated)
	rec := col.Find("feature-1")
	if assert.NotNil(t, rec) {
		assert.Equal(t, core.StatusOpen, rec.Status)
		assert.Equal(t, "homepage rework", rec.Description)
		assert.Equal(t, []string{"/index", "/about"}, rec.Pages)
	}
}

func TestUpdateReplacesPagesVerbatim(t *testing.T) {
	e := NewEngine()
	col := core.Collection{openReview("r1", "/old")}

	out := e.Apply(OpUpdate, rctx("r1"), &col, Params{Pages: "/new-1,/new-2"})

	assert.Equal(t, 200, out.Code)
	assert.Equal(t, []string{"/new-1", "/new-2"}, col.Find("r1").Pages)
}

func TestUpdateRejectsSubmitted(t *testing.T) {
	e := NewEngine()
	col := core.Collection{submittedReview("r1", "/a")}

	out := e.Apply(OpUpdate, rctx("r1"), &col, Params{Description: "too late"})

	assert.Equal(t, 403, out.Code)
	assert.False(t, out.Mutated)
	assert.Empty(t, col.Find("r1").Description)
}

func TestAddPageIsIdempotent(t *testing.T) {
	e := NewEngine()
	col := core.Collection{openReview("r1")}

	for range 2 {
		out := e.Apply(OpAddPage, rctx("r1"), &col, Params{Page: "/products"})
		assert.Equal(t, 200, out.Code)
	}

	assert.Equal(t, []string{"/products"}, col.Find("r1").Pages)
}

func TestAddPageOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		reviewID string
		existing *core.Review
		page     string
		wantCode int
	}{
		{
			name:     "unknown review",
			reviewID: "ghost",
			page:     "/x",
			wantCode: 404,
		},
		{
			name:     "default review is created implicitly",
			reviewID: "default",
			page:     "/x",
			wantCode: 200,
		},
		{
			name:     "missing page parameter",
			reviewID: "r1",
			existing: openReview("r1"),
			page:     "",
			wantCode: 404,
		},
		{
			name:     "page containing a comma",
			reviewID: "r1",
			existing: openReview("r1"),
			page:     "/a,b",
			wantCode: 404,
		},
		{
			name:     "submitted review",
			reviewID: "r1",
			existing: submittedReview("r1"),
			page:     "/x",
			wantCode: 403,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			col := core.Collection{}
			if tt.existing != nil {
				col = append(col, tt.existing)
			}
			out := e.Apply(OpAddPage, rctx(tt.reviewID), &col, Params{Page: tt.page})
			assert.Equal(t, tt.wantCode, out.Code)
		})
	}
}

func TestAddPageDefaultAutoCreate(t *testing.T) {
	e := NewEngine()
	col := core.Collection{}

	out := e.Apply(OpAddPage, rctx("default"), &col, Params{Page: "/x"})

	assert.Equal(t, 200, out.Code)
	rec := col.Find("default")
	if assert.NotNil(t, rec) {
		assert.Equal(t, core.StatusOpen, rec.Status)
		assert.Equal(t, []string{"/x"}, rec.Pages)
	}
}

func TestAddPageHonorsPageLimit(t *testing.T) {
	e := NewEngine()
	col := core.Collection{openReview("r1", "/a", "/b")}

	out := e.Apply(OpAddPage, rctx("r1"), &col, Params{Page: "/c", MaxPages: 2})
	assert.Equal(t, 403, out.Code)

	// Re-adding an existing page stays idempotent even at the limit.
	out = e.Apply(OpAddPage, rctx("r1"), &col, Params{Page: "/a", MaxPages: 2})
	assert.Equal(t, 200, out.Code)
	assert.Equal(t, []string{"/a", "/b"}, col.Find("r1").Pages)
}

func TestAddPageKeepsCollectionRoundTrippable(t *testing.T) {
	// A comma inside a page would split into two entries through the
	// comma-joined persisted form; the engine must never let one in.
	e := NewEngine()
	col := core.Collection{openReview("r1", "/a")}

	out := e.Apply(OpAddPage, rctx("r1"), &col, Params{Page: "/a,b"})

	assert.Equal(t, 404, out.Code)
	assert.False(t, out.Mutated)
	assert.Equal(t, []string{"/a"}, col.Find("r1").Pages)

	encoded, err := core.EncodeCollection(col)
	assert.NoError(t, err)
	decoded, err := core.DecodeCollection(encoded)
	assert.NoError(t, err)
	assert.Equal(t, col.Find("r1").Pages, decoded.Find("r1").Pages)
}

func TestRemovePageIgnoresQueryString(t *testing.T) {
	e := NewEngine()
	col := core.Collection{openReview("r1", "/a/b?x=1", "/c")}

	out := e.Apply(OpRemovePage, rctx("r1"), &col, Params{Page: "/a/b?x=2"})

	assert.Equal(t, 200, out.Code)
	assert.Equal(t, []string{"/c"}, col.Find("r1").Pages)
}

func TestRemovePageOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		existing *core.Review
		page     string
		wantCode int
	}{
		{name: "unknown review", page: "/x", wantCode: 404},
		{name: "unknown page", existing: openReview("r1", "/a"), page: "/b", wantCode: 404},
		{name: "page containing a comma", existing: openReview("r1", "/a"), page: "/a,b", wantCode: 404},
		{name: "submitted review", existing: submittedReview("r1", "/a"), page: "/a", wantCode: 403},
		{name: "exact match", existing: openReview("r1", "/a"), page: "/a", wantCode: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			col := core.Collection{}
			if tt.existing != nil {
				col = append(col, tt.existing)
			}
			out := e.Apply(OpRemovePage, rctx("r1"), &col, Params{Page: tt.page})
			assert.Equal(t, tt.wantCode, out.Code)
		})
	}
}

func TestSubmittedStateMachine(t *testing.T) {
	// Once submitted, only submit/approve/reject may touch the review.
	blocked := []string{OpUpdate, OpAddPage, OpRemovePage}
	for _, verb := range blocked {
		t.Run(verb, func(t *testing.T) {
			e := NewEngine()
			col := core.Collection{submittedReview("r1", "/a")}
			out := e.Apply(verb, rctx("r1"), &col, Params{Page: "/a", Pages: "/a"})
			assert.Equal(t, 403, out.Code)
		})
	}

	allowed := map[string]int{OpSubmit: 200, OpApprove: 200, OpReject: 200}
	for verb, wantCode := range allowed {
		t.Run(verb, func(t *testing.T) {
			e := NewEngine()
			col := core.Collection{submittedReview("r1", "/a")}
			out := e.Apply(verb, rctx("r1"), &col, Params{})
			assert.Equal(t, wantCode, out.Code)
		})
	}
}

func TestApproveRemovesOrdinaryReview(t *testing.T) {
	e := NewEngine()
	col := core.Collection{openReview("default"), submittedReview("r1", "/a")}

	out := e.Apply(OpApprove, rctx("r1"), &col, Params{})

	assert.Equal(t, 200, out.Code)
	assert.Nil(t, col.Find("r1"))
	assert.NotNil(t, col.Find("default"))
}

func TestApproveResetsDefaultReview(t *testing.T) {
	e := NewEngine()
	col := core.Collection{submittedReview("default", "/a", "/b")}

	out := e.Apply(OpApprove, rctx("default"), &col, Params{})

	assert.Equal(t, 200, out.Code)
	rec := col.Find("default")
	if assert.NotNil(t, rec) {
		assert.Equal(t, core.StatusOpen, rec.Status)
		assert.Empty(t, rec.Pages)
	}
}

func TestRejectReopensWithoutClearingPages(t *testing.T) {
	e := NewEngine()
	col := core.Collection{submittedReview("r1", "/a", "/b")}

	out := e.Apply(OpReject, rctx("r1"), &col, Params{})

	assert.Equal(t, 200, out.Code)
	rec := col.Find("r1")
	assert.Equal(t, core.StatusOpen, rec.Status)
	assert.Equal(t, []string{"/a", "/b"}, rec.Pages)
}

func TestOperationsOnMissingReview(t *testing.T) {
	for _, verb := range []string{OpSubmit, OpApprove, OpReject, OpRemovePage} {
		t.Run(verb, func(t *testing.T) {
			e := NewEngine()
			col := core.Collection{}
			out := e.Apply(verb, rctx("ghost"), &col, Params{Page: "/x"})
			assert.Equal(t, 404, out.Code)
			assert.False(t, out.Mutated)
		})
	}
}

func TestEventFor(t *testing.T) {
	col := core.Collection{openReview("r1", "/a", "/b")}

	event := EventFor(OpAddPage, rctx("r1"), col)
	assert.Equal(t, "add-page", event.Op)
	assert.Equal(t, "r1", event.ReviewID)
	assert.Equal(t, "open", event.Status)
	assert.Equal(t, "/a,/b", event.Pages)

	// A review removed by approval reports as approved with no pages.
	event = EventFor(OpApprove, rctx("gone"), core.Collection{})
	assert.Equal(t, "approved", event.Status)
	assert.Empty(t, event.Pages)

	// Unrecognized verbs are create-or-update.
	event = EventFor("", rctx("r1"), col)
	assert.Equal(t, "update", event.Op)
}
