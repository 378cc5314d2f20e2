package domain

// ActivityType enumerates classified client activities.
type ActivityType string

const (
	ActivityTypePurchase ActivityType = "purchase"
	ActivityTypeRefund   ActivityType = "refund"
	ActivityTypeMessage  ActivityType = "message"
	ActivityTypeOther    ActivityType = "other"
)

// Activity is one classified interaction belonging to a client. ClientID
// references a Client from the same rebuild epoch; the store does not
// enforce it.
type Activity struct {
	ID          string
	ClientID    string
	Type        ActivityType
	Description string
	Date        string
	SourceID    int64
}
