package verification

import (
	"net/url"
	"time"
)

// ResumeToken is what the payment gateway appends to the return url when it
// sends the shopper back. Only the reference is trusted as an identifier;
// the gateway status is advisory and never proves payment.
type ResumeToken struct {
	Reference     string
	GatewayStatus string
}

func NewResumeTokenFromValues(values url.Values) ResumeToken {
	return ResumeToken{
		Reference:     values.Get("trx_ref"),
		GatewayStatus: values.Get("status"),
	}
}

const gatewayStatusSuccess = "success"

// IndicatesFailure reports whether the gateway itself already admits the
// payment did not complete. A positive gateway status proves nothing.
func (t ResumeToken) IndicatesFailure() bool {
	return t.GatewayStatus != "" && t.GatewayStatus != gatewayStatusSuccess
}

type VerificationState string

const (
	StateSucceeded VerificationState = "succeeded"
	StateFailed    VerificationState = "failed"
)

// VerificationRecord is the durable outcome of verifying one payment
// reference. Re-running the verification for the same reference updates
// Attempts but a settled success never degrades.
type VerificationRecord struct {
	Reference     string
	ShopperUID    string
	State         VerificationState
	Message       string
	GatewayStatus string
	Attempts      int
	CreatedAt     time.Time
	LastModified  *time.Time
}

func (r VerificationRecord) Succeeded() bool {
	return r.State == StateSucceeded
}
