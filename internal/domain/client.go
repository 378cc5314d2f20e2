package domain

// Client is the client view row, at most one per qualifying sender email.
type Client struct {
	ID     string
	Name   string
	Email  string
	Status string
	Tags   []string
	Score  float32
}
