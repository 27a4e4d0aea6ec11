package client

import (
	"regexp"
	"strconv"
	"strings"
)

// Outcome classifies a charge-limit request so callers can distinguish
// "daemon refused" from "daemon unreachable".
type Outcome int

const (
	// Applied means the daemon acknowledged the limit. Limit carries the
	// value it actually applied, which may be clamped.
	Applied Outcome = iota
	// Rejected means the daemon responded but without a parseable
	// applied percentage. Reason carries the raw response text.
	Rejected
	// TransportFailure means the daemon could not be reached or the
	// round trip broke. Err carries the underlying error.
	TransportFailure
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	case TransportFailure:
		return "transport failure"
	default:
		return "unknown"
	}
}

// Result is the outcome of one charge-limit request. It is created per
// request and consumed once by the caller.
type Result struct {
	Outcome Outcome
	Limit   int    // set when Applied
	Reason  string // set when Rejected
	Err     error  // set when TransportFailure
	Seq     uint64 // request sequence number, tagged by the Limiter
}

// The daemon acknowledges with free-form text embedding the applied
// percentage, e.g. "setting charging limit to 80%".
var appliedRe = regexp.MustCompile(`(\d+)\s*%`)

// parseResponse interprets one daemon response line. A response without
// a parseable percentage is a rejection, never a silent success.
func parseResponse(line string) Result {
	if m := appliedRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return Result{Outcome: Applied, Limit: n}
		}
	}
	return Result{Outcome: Rejected, Reason: strings.TrimSpace(line)}
}
