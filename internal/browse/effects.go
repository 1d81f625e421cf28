package browse

// Effect is work Reduce asks the caller to perform.
type Effect interface {
	isEffect()
}

// FetchPage asks for page to be loaded. The outcome must come back as a
// PageLoaded or PageFailed event carrying the same Seq.
type FetchPage struct {
	Seq  uint64
	Page int
	Rows int
}

// ReportFailure asks for exactly one diagnostic log entry for a failed fetch.
type ReportFailure struct {
	Seq  uint64
	Page int
	Err  error
}

// DiscardReason says why a response was dropped.
type DiscardReason string

// Discard reasons.
const (
	DiscardStale    DiscardReason = "stale"
	DiscardCanceled DiscardReason = "canceled"
)

// DiscardResponse records that a response was ignored.
type DiscardResponse struct {
	Seq    uint64
	Latest uint64
	Page   int
	Reason DiscardReason
}

// Notify carries a short message for the user.
type Notify struct {
	Text string
}

func (FetchPage) isEffect()       {}
func (ReportFailure) isEffect()   {}
func (DiscardResponse) isEffect() {}
func (Notify) isEffect()          {}
