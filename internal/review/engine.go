// Package review implements the review lifecycle engine: the pure state-machine
// logic that applies one operation to a review collection and reports an
// HTTP-like outcome. Persistence and notification are the caller's concern.
package review

import (
	"strings"

	"github.com/sevigo/page-warden/internal/core"
)

// Operation verbs accepted by the engine. UpdateOp doubles as the fallback for
// unrecognized verbs, matching the create-or-update default.
const (
	OpUpdate     = "update"
	OpAddPage    = "add-page"
	OpRemovePage = "remove-page"
	OpSubmit     = "submit"
	OpApprove    = "approve"
	OpReject     = "reject"
)

// Params carries the operation inputs taken from the request query string.
type Params struct {
	Page        string
	Description string
	Pages       string // comma-joined replacement page list for update

	// MaxPages caps the page count per review when positive. It comes from the
	// per-repo policy, not from the request.
	MaxPages int
}

// Outcome is the result of one engine operation.
type Outcome struct {
	Code    int
	Message string
	Mutated bool
}

func ok(message string) Outcome {
	return Outcome{Code: 200, Message: message, Mutated: true}
}

var (
	outcomeNotFound     = Outcome{Code: 404, Message: "Review not found"}
	outcomePageNotFound = Outcome{Code: 404, Message: "Page not found"}
	outcomeSubmitted    = Outcome{Code: 403, Message: "Forbidden. Review is already submitted"}
	outcomePageLimit    = Outcome{Code: 403, Message: "Forbidden. Review page limit reached"}
)

// Engine applies lifecycle operations to review collections. It mutates the
// collection in place and never touches storage.
type Engine struct{}

// NewEngine returns a lifecycle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply runs the operation named by verb against the collection, addressing the
// review named in the request context. Unknown verbs fall through to update.
func (e *Engine) Apply(verb string, rctx core.RequestContext, col *core.Collection, params Params) Outcome {
	rec := col.Find(rctx.ReviewID)

	switch verb {
	case OpApprove:
		return e.approve(rec, rctx, col)
	case OpSubmit:
		return e.submit(rec)
	case OpReject:
		return e.reject(rec)
	case OpAddPage:
		return e.addPage(rec, rctx, col, params)
	case OpRemovePage:
		return e.removePage(rec, params.Page)
	default:
		return e.update(rec, rctx, col, params)
	}
}

// update creates the review if absent, then applies description and a verbatim
// page-list replacement. Submitted reviews reject the mutation untouched.
func (e *Engine) update(rec *core.Review, rctx core.RequestContext, col *core.Collection, params Params) Outcome {
	if rec != nil && rec.Status == core.StatusSubmitted {
		return outcomeSubmitted
	}
	pages := core.SplitPages(params.Pages)
	if params.MaxPages > 0 && len(pages) > params.MaxPages {
		return outcomePageLimit
	}
	if rec == nil {
		rec = &core.Review{ReviewID: rctx.ReviewID, Status: core.StatusOpen}
		*col = append(*col, rec)
	}
	if params.Description != "" {
		rec.Description = params.Description
	}
	if params.Pages != "" {
		rec.Pages = pages
	}
	return ok("Review Created / Updated")
}

// addPage appends a page idempotently. An absent review is an error unless the
// request addresses the default review, which is created on first use.
func (e *Engine) addPage(rec *core.Review, rctx core.RequestContext, col *core.Collection, params Params) Outcome {
	if rec == nil {
		if !rctx.IsDefault() {
			return outcomeNotFound
		}
		rec = &core.Review{ReviewID: core.DefaultReviewID, Status: core.StatusOpen}
		*col = append(*col, rec)
	}
	if rec.Status == core.StatusSubmitted {
		return outcomeSubmitted
	}
	// Pages persist comma-joined, so a comma inside a page value would split
	// into two entries on reload. Reject it at the door.
	if params.Page == "" || strings.Contains(params.Page, ",") {
		return outcomePageNotFound
	}
	if params.MaxPages > 0 && !rec.HasPage(params.Page) && len(rec.Pages) >= params.MaxPages {
		return outcomePageLimit
	}
	rec.AddPage(params.Page)
	return ok("Review Updated")
}

// removePage drops the stored page whose path matches the target's path. Query
// strings are ignored on both sides so cache-busting parameters never block a
// removal.
func (e *Engine) removePage(rec *core.Review, page string) Outcome {
	if rec == nil {
		return outcomeNotFound
	}
	if rec.Status == core.StatusSubmitted {
		return outcomeSubmitted
	}
	// Stored pages are comma-free, so a comma in the target can never match.
	if strings.Contains(page, ",") {
		return outcomePageNotFound
	}
	target := stripQuery(page)
	for i, p := range rec.Pages {
		if stripQuery(p) == target {
			rec.Pages = append(rec.Pages[:i], rec.Pages[i+1:]...)
			return ok("Review Updated")
		}
	}
	return outcomePageNotFound
}

func (e *Engine) submit(rec *core.Review) Outcome {
	if rec == nil {
		return outcomeNotFound
	}
	rec.Status = core.StatusSubmitted
	return ok("Review Submitted")
}

// approve discards an ordinary review: approved reviews are single-use. The
// default review instead resets in place so the baseline surface keeps
// accepting page proposals.
func (e *Engine) approve(rec *core.Review, rctx core.RequestContext, col *core.Collection) Outcome {
	if rec == nil {
		return outcomeNotFound
	}
	if rec.ReviewID == core.DefaultReviewID {
		rec.Pages = nil
		rec.Status = core.StatusOpen
	} else {
		col.Remove(rec.ReviewID)
	}
	return ok("Review Approved")
}

func (e *Engine) reject(rec *core.Review) Outcome {
	if rec == nil {
		return outcomeNotFound
	}
	rec.Status = core.StatusOpen
	return ok("Review Rejected")
}

// EventFor builds the notification payload for a completed operation, reading
// the record's post-operation state from the collection. A review removed by
// approval reports as approved with no pages.
func EventFor(verb string, rctx core.RequestContext, col core.Collection) *core.ReviewEvent {
	event := &core.ReviewEvent{
		Op:       normalizeVerb(verb),
		ReviewID: rctx.ReviewID,
		Repo:     rctx.Repo,
		Owner:    rctx.Owner,
	}
	if rec := col.Find(rctx.ReviewID); rec != nil {
		event.Status = string(rec.Status)
		event.Pages = core.JoinPages(rec.Pages)
	} else {
		event.Status = "approved"
	}
	return event
}

func normalizeVerb(verb string) string {
	switch verb {
	case OpAddPage, OpRemovePage, OpSubmit, OpApprove, OpReject:
		return verb
	default:
		return OpUpdate
	}
}

func stripQuery(page string) string {
	if i := strings.IndexByte(page, '?'); i >= 0 {
		return page[:i]
	}
	return page
}
