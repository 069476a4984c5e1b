// Package analytics records anonymized usage events and aggregates them
// into summaries and time series.
package analytics

import "time"

// EventType enumerates the tracked actions.
type EventType string

const (
	EventOfficialsLookup EventType = "officials_lookup"
	EventBillSearch      EventType = "bill_search"
	EventBillView        EventType = "bill_view"
	EventLetterDrafted   EventType = "letter_drafted"
	EventScriptDrafted   EventType = "script_drafted"
	EventAPIError        EventType = "api_error"
)

// knownTypes gates what the recorder will accept.
var knownTypes = map[EventType]struct{}{
	EventOfficialsLookup: {},
	EventBillSearch:      {},
	EventBillView:        {},
	EventLetterDrafted:   {},
	EventScriptDrafted:   {},
	EventAPIError:        {},
}

// Event is one tracked action. ActorHash is derived from the anonymized
// client IP and user agent; no raw identifier is ever stored.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ActorHash string    `json:"actor_hash"`
	State     string    `json:"state,omitempty"`
	BillQuery string    `json:"bill_query,omitempty"`
	Topic     string    `json:"topic,omitempty"`
	Endpoint  string    `json:"endpoint,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Valid reports whether the event carries a known type.
func (e Event) Valid() bool {
	_, ok := knownTypes[e.Type]
	return ok
}

// Summary is the aggregate view over a time window.
type Summary struct {
	Window      string            `json:"window"`
	Total       int               `json:"total"`
	CountByType map[EventType]int `json:"count_by_type"`
	TopTopics   []RankedValue     `json:"top_topics"`
	TopStates   []RankedValue     `json:"top_states"`
	ErrorCount  int               `json:"error_count"`
}

// RankedValue is a value with its occurrence count, for top-N lists.
type RankedValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TimeBucket is one zero-filled slot in a time series.
type TimeBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}
