package util

import (
	"fmt"
	"strings"

	"github.com/sevigo/page-warden/internal/core"
)

// ParseReviewHost resolves the routing context from a review hostname of the
// shape <reviewId>--<ref>--<repo>--<owner>[.<domain>]. The three-part form
// <ref>--<repo>--<owner> addresses the reserved default review. Only the first
// DNS label is significant; the domain suffix, when configured, is stripped
// before parsing.
func ParseReviewHost(hostname, domain string) (core.RequestContext, error) {
	host := hostname
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	if domain != "" {
		host = strings.TrimSuffix(host, "."+strings.TrimPrefix(domain, "."))
	}
	origin := host
	if i := strings.IndexByte(origin, '.'); i >= 0 {
		origin = origin[:i]
	}

	splits := strings.Split(origin, "--")
	if len(splits) == 3 {
		splits = append([]string{core.DefaultReviewID}, splits...)
	}
	if len(splits) != 4 {
		return core.RequestContext{}, fmt.Errorf("invalid review host %q: want <reviewId>--<ref>--<repo>--<owner>", hostname)
	}

	rctx := core.RequestContext{
		ReviewID: splits[0],
		Ref:      splits[1],
		Repo:     splits[2],
		Owner:    splits[3],
	}
	if rctx.ReviewID == "" {
		rctx.ReviewID = core.DefaultReviewID
	}
	if rctx.Ref == "" || rctx.Repo == "" || rctx.Owner == "" {
		return core.RequestContext{}, fmt.Errorf("invalid review host %q: empty ref, repo, or owner", hostname)
	}
	return rctx, nil
}
