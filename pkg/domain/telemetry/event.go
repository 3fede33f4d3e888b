package telemetry

import "github.com/google/uuid"

// Event is the exporter-facing record built from a redacted exchange.
// Bodies carried here are already obfuscated; raw payloads never leave
// the request scope.
type Event struct {
	InteractionID      string `json:"interaction_id"`
	RequestPath        string `json:"request_path"`
	RequestMethod      string `json:"request_method"`
	StatusCode         int    `json:"status_code"`
	ObfuscatedRequest  string `json:"obfuscated_request"`
	ObfuscatedResponse string `json:"obfuscated_response"`
	StartTimestamp     int64  `json:"start_timestamp"`
	EndTimestamp       int64  `json:"end_timestamp"`
	Latency            int64  `json:"latency"`
	IP                 string `json:"user_ip,omitempty"`
	Locale             string `json:"locale,omitempty"`
	Device             string `json:"device,omitempty"`
	Os                 string `json:"os,omitempty"`
	Browser            string `json:"browser,omitempty"`
}

func NewExchangeEvent() *Event {
	return &Event{
		InteractionID: uuid.New().String(),
	}
}
