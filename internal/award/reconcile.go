package award

// Resolve picks the authoritative mileage figure from up to four candidate
// sources by strict precedence: manual > live availability > search-derived
// estimate > published baseline. The first present source wins verbatim;
// lower-precedence sources are ignored entirely, never blended.
//
// Fees are only meaningful on manual quotes; the other sources resolve with
// zero fees.
func Resolve(manual, live *Quote, estimate int, haveEstimate bool, baseline int) Quote {
	switch {
	case manual != nil:
		return Quote{Miles: manual.Miles, Fees: manual.Fees, Source: SourceManual}
	case live != nil:
		return Quote{Miles: live.Miles, Source: SourceLive}
	case haveEstimate:
		return Quote{Miles: estimate, Source: SourceEstimated}
	default:
		return Quote{Miles: baseline, Source: SourceDefault}
	}
}
