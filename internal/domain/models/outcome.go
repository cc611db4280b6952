package models

// FailReason classifies a fetch failure.
type FailReason int

const (
	FailNone FailReason = iota
	FailNetwork
	FailNotFound
	FailEmpty
)

func (r FailReason) String() string {
	switch r {
	case FailNone:
		return "none"
	case FailNetwork:
		return "network"
	case FailNotFound:
		return "not_found"
	case FailEmpty:
		return "empty"
	}
	return "unknown"
}

// FetchOutcome carries either a fetched series or a typed failure reason.
// Callers must check OK before using Series.
type FetchOutcome struct {
	Series *Series
	Proxy  bool   // series is a synthetic approximation
	Note   string // annotation for proxy or degraded results
	Reason FailReason
	Err    error
}

func (o FetchOutcome) OK() bool { return o.Reason == FailNone && o.Series != nil }

// Fetched wraps a successful outcome.
func Fetched(s *Series) FetchOutcome { return FetchOutcome{Series: s} }

// FetchFailed wraps a typed failure.
func FetchFailed(reason FailReason, err error) FetchOutcome {
	return FetchOutcome{Reason: reason, Err: err}
}
