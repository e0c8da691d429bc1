package core

// RequestContext carries the routing coordinates resolved from an inbound
// review host of the shape <reviewId>--<ref>--<repo>--<owner>. A bare
// three-part host addresses the reserved default review.
type RequestContext struct {
	ReviewID string
	Ref      string
	Repo     string
	Owner    string
}

// IsDefault reports whether the request addresses the reserved default review.
func (rc RequestContext) IsDefault() bool {
	return rc.ReviewID == DefaultReviewID
}
