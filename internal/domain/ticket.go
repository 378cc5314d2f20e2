package domain

import "time"

// Ticket is the denormalized ticket view row, one per upstream ticket.
// Score is a query-time full-text relevance value; it is never stored.
type Ticket struct {
	ID          string
	SourceID    int64
	CreatedDate time.Time
	UpdatedDate time.Time
	Status      string
	Channel     string
	Name        string
	Email       string
	Subject     string
	Message     string
	Tags        []string
	Score       float32
}
