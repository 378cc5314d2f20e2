package zendesk

import (
	"encoding/json"
	"time"
)

// RawTicket is one ticket as returned by the incremental export API. It is
// immutable once fetched and lives only for the duration of a sync run.
// Unknown upstream fields are ignored.
type RawTicket struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Status      string    `json:"status"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Via         Via       `json:"via"`
}

// Via describes how a ticket reached the helpdesk.
type Via struct {
	Channel string `json:"channel"`
	Source  Source `json:"source"`
}

// Source wraps the sender of a ticket.
type Source struct {
	From From `json:"from"`
}

// From identifies the sender. Address may be absent or null upstream.
type From struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

// Email returns the sender address or "" when it is absent.
func (f From) Email() string {
	if f.Address == nil {
		return ""
	}
	return *f.Address
}

// exportPage is the wire shape of one incremental export page.
type exportPage struct {
	Tickets []RawTicket `json:"tickets"`
	EndTime int64       `json:"end_time"`
}

func decodePage(data []byte) (*exportPage, error) {
	var page exportPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
