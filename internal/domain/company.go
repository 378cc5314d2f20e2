package domain

// Company is the reseller/distributor view row, deduplicated by email.
// Country is inferred at construction time and empty when no reference
// country name was found in the sender's ticket descriptions.
type Company struct {
	ID      string
	Name    string
	Email   string
	Country string
	Score   float32
}
