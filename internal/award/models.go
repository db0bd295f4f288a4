// Package award provides the mileage quote model, the free-text miles
// estimate extractor, and the multi-source quote reconciler.
package award

// Source identifies which source produced a mileage figure. Trust differs
// enormously by source, so every figure carries its provenance.
type Source string

// Provenance labels, ordered from most to least trusted.
const (
	// SourceManual is a user-entered quote from a live airline award search.
	SourceManual Source = "manual"

	// SourceLive is a quote from the award availability gateway.
	SourceLive Source = "live"

	// SourceEstimated is a figure mined from unstructured web search text.
	SourceEstimated Source = "estimated"

	// SourceDefault is the program's published baseline rate.
	SourceDefault Source = "default"
)

// Quote is a resolved mileage cost for a (route, program) pair. Fees is the
// cash co-pay required alongside the miles; only manual quotes carry fees.
type Quote struct {
	Miles  int     `json:"miles"`
	Fees   float64 `json:"fees"`
	Source Source  `json:"source"`
}
