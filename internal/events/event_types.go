package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSyncStarted   EventType = "sync_started"
	EventSyncCompleted EventType = "sync_completed"
	EventSyncFailed    EventType = "sync_failed"
)

// Event represents a sync lifecycle event emitted by the orchestrator.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SyncCompletedPayload carries the result counts of one rebuild epoch.
type SyncCompletedPayload struct {
	Pages      int           `json:"pages"`
	RawTickets int           `json:"raw_tickets"`
	Tickets    int           `json:"tickets"`
	Clients    int           `json:"clients"`
	Companies  int           `json:"companies"`
	Activities int           `json:"activities"`
	Duration   time.Duration `json:"duration"`
}

// SyncFailedPayload describes an aborted run.
type SyncFailedPayload struct {
	Stage      string `json:"stage"`
	RawTickets int    `json:"raw_tickets"`
	Reason     string `json:"reason"`
}
