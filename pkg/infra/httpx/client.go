package httpx

import "net/http"

// Client is the outbound HTTP transport used by telemetry exporters.
// Implementations must be safe for concurrent use.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
