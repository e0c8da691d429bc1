// Package handler provides the HTTP handlers for the review API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sevigo/page-warden/internal/config"
	"github.com/sevigo/page-warden/internal/core"
	"github.com/sevigo/page-warden/internal/gate"
	"github.com/sevigo/page-warden/internal/review"
	"github.com/sevigo/page-warden/internal/util"
)

// ReviewHandler serves the review API: GET lists the collection for a
// (repo, owner) key, POST applies one lifecycle operation resolved from the
// request path. Every request re-derives its routing context from the review
// hostname.
type ReviewHandler struct {
	cfg        *config.Config
	store      core.ReviewStore
	engine     *review.Engine
	gate       gate.Gate
	dispatcher core.EventDispatcher
	policies   *config.Policies
	logger     *slog.Logger
}

// NewReviewHandler creates the review handler with its injected dependencies.
func NewReviewHandler(
	cfg *config.Config,
	store core.ReviewStore,
	engine *review.Engine,
	g gate.Gate,
	dispatcher core.EventDispatcher,
	policies *config.Policies,
	logger *slog.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		cfg:        cfg,
		store:      store,
		engine:     engine,
		gate:       g,
		dispatcher: dispatcher,
		policies:   policies,
		logger:     logger,
	}
}

// listResponse is the GET body shape consumed by review UIs.
type listResponse struct {
	Data core.Collection `json:"data"`
}

// List returns the full collection for the request's (repo, owner) key, or a
// single synthetic open default record when nothing is persisted yet.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	rctx, ok := h.routingContext(w, r)
	if !ok {
		return
	}

	col, err := h.store.Load(r.Context(), rctx.Repo, rctx.Owner)
	if err != nil {
		h.logger.Error("failed to load review collection", "repo", rctx.Repo, "owner", rctx.Owner, "error", err)
		plainResponse(w, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	if len(col) == 0 {
		col = core.Collection{{ReviewID: core.DefaultReviewID, Status: core.StatusOpen}}
	}

	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(listResponse{Data: col}); err != nil {
		h.logger.Error("failed to encode review list", "error", err)
	}
}

// Mutate applies the lifecycle operation named by the request path, persists
// the collection, and queues a change notification. The access gate runs
// before any state is touched.
func (h *ReviewHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	rctx, ok := h.routingContext(w, r)
	if !ok {
		return
	}

	if err := h.gate.Authorize(r.Context(), rctx, r.Header.Get("Authorization")); err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			plainResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h.logger.Error("access gate check failed", "repo", rctx.Repo, "owner", rctx.Owner, "error", err)
		plainResponse(w, http.StatusInternalServerError, "Authorization check failed")
		return
	}

	col, err := h.store.Load(r.Context(), rctx.Repo, rctx.Owner)
	if err != nil {
		h.logger.Error("failed to load review collection", "repo", rctx.Repo, "owner", rctx.Owner, "error", err)
		plainResponse(w, http.StatusInternalServerError, "Failed to load reviews")
		return
	}

	verb := operationVerb(r.URL.Path)
	params := review.Params{
		Page:        r.URL.Query().Get("page"),
		Description: r.URL.Query().Get("description"),
		Pages:       r.URL.Query().Get("pages"),
		MaxPages:    h.policies.PageLimit(rctx.Owner, rctx.Repo),
	}

	outcome := h.engine.Apply(verb, rctx, &col, params)
	if outcome.Mutated {
		if err := h.store.Save(r.Context(), rctx.Repo, rctx.Owner, col); err != nil {
			h.logger.Error("failed to save review collection", "repo", rctx.Repo, "owner", rctx.Owner, "error", err)
			plainResponse(w, http.StatusInternalServerError, "Failed to save reviews")
			return
		}
		h.notify(r, verb, rctx, col)
	}

	plainResponse(w, outcome.Code, outcome.Message)
}

// Preflight answers CORS preflight requests; the review UI runs on a
// different origin than the API hosts.
func (h *ReviewHandler) Preflight(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	w.WriteHeader(http.StatusNoContent)
}

// notify queues the change event after a successful persist. Failures never
// affect the response already computed for the mutation.
func (h *ReviewHandler) notify(r *http.Request, verb string, rctx core.RequestContext, col core.Collection) {
	if !h.policies.NotifyEnabled(rctx.Owner, rctx.Repo) {
		h.logger.Debug("notifications muted by policy", "owner", rctx.Owner, "repo", rctx.Repo)
		return
	}
	event := review.EventFor(verb, rctx, col)
	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		h.logger.Error("failed to queue review notification", "op", event.Op, "review", event.ReviewID, "error", err)
	}
}

// routingContext resolves the review coordinates from the request host, or the
// hostname query parameter when a proxy rewrote the Host header.
func (h *ReviewHandler) routingContext(w http.ResponseWriter, r *http.Request) (core.RequestContext, bool) {
	hostname := r.Host
	if override := r.URL.Query().Get("hostname"); override != "" {
		hostname = override
	}

	rctx, err := util.ParseReviewHost(hostname, h.cfg.Server.ReviewDomain)
	if err != nil {
		h.logger.Debug("rejecting request with unparseable review host", "host", hostname, "error", err)
		plainResponse(w, http.StatusNotFound, "Review host not found")
		return core.RequestContext{}, false
	}
	return rctx, true
}

// operationVerb picks the lifecycle operation from the last path segment.
// Unrecognized segments mean create-or-update.
func operationVerb(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	last := segments[len(segments)-1]
	switch last {
	case review.OpApprove, review.OpSubmit, review.OpReject, review.OpAddPage, review.OpRemovePage:
		return last
	default:
		return review.OpUpdate
	}
}

func plainResponse(w http.ResponseWriter, code int, text string) {
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	_, _ = fmt.Fprint(w, text)
}
