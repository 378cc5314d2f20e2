package dto

// SimpleTicket is the display form of a ticket row: dates pre-formatted,
// tags joined, message flattened and truncated for the list view.
type SimpleTicket struct {
	SourceID int64  `json:"zenDeskId"`
	Status   string `json:"status"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	Tags     string `json:"tags"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// TrendValueResponse pairs the current week total with its trend percentage.
type TrendValueResponse struct {
	Total float64 `json:"total"`
	Trend float64 `json:"trend"`
}
