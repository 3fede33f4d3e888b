package telemetry

import "time"

// CapturedExchange is the per-request snapshot taken by the interception
// layer. It is owned by a single request flow and discarded once the
// telemetry record has been emitted.
//
// A nil RequestBody means the request carried no body at all, which is
// distinct from an empty or literal-null JSON body.
type CapturedExchange struct {
	RequestBody  []byte
	ResponseBody []byte
	Path         string
	Method       string
	StatusCode   int
	ClientIP     string
	UserAgent    string
	Locale       string
	StartedAt    time.Time
	FinishedAt   time.Time
}
