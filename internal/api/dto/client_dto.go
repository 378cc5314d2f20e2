package dto

// SearchBody is the shared paginated search request used by the client and
// company search endpoints.
type SearchBody struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Size   int    `json:"size"`
}

// ClientResponse is the client view row as served to the dashboard.
type ClientResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
	Score  float32  `json:"score"`
}

// CompanyResponse is the company view row as served to the dashboard.
type CompanyResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Country string  `json:"country,omitempty"`
	Score   float32 `json:"score"`
}

// ActivityResponse is one classified client activity.
type ActivityResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
	SourceID    int64  `json:"zenDeskId"`
}
