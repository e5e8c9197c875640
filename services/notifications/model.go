package notifications

import "time"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Notification is one toast-style message for a shopper, derived from cart
// and checkout outcome events.
type Notification struct {
	UID        string
	ShopperUID string
	Severity   Severity
	Message    string
	CreatedAt  time.Time
}
