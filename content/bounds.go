package content

// Bounds describes how a tool result has been bounded relative to the full
// underlying data set. It is a small, provider-agnostic contract so
// runtimes, hooks, and sinks can surface truncation metadata without
// re-inspecting tool-specific fields. ToolResultBlock carries an optional
// *Bounds alongside its Result so a paginating or windowing tool can
// report this directly.
//
// Returned reports how many items or points are present in the bounded
// view. Total, when non-nil, reports the best-effort total before
// truncation. Truncated indicates whether any caps were applied (length,
// window, depth). RefinementHint gives short, human-readable guidance on
// how to narrow the query when Truncated is true.
type Bounds struct {
	Returned       int
	Total          *int
	Truncated      bool
	RefinementHint string
}

// BoundedResult is an optional interface a tool's decoded result payload
// can implement so the code assembling a ToolResultBlock can populate its
// Bounds field without heuristically inspecting tool-specific fields.
type BoundedResult interface {
	Bounds() Bounds
}
