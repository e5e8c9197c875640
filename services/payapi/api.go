package payapi

import (
	"context"
)

// Payer abstracts the payment gateway as exposed through the shop backend.
// Initialize starts a hosted-payment session, Verify asks for the final
// verdict on a payment reference.
type Payer interface {
	Initialize(c context.Context, request InitializeRequest) (InitializeResponse, error)
	Verify(c context.Context, reference string) (VerifyResponse, error)
}

type InitializeRequest struct {
	OrderUID  string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

type InitializeResponse struct {
	Success bool           `json:"success"`
	Data    InitializeData `json:"data"`
}

type InitializeData struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// VerifyResponse is the backend's authoritative verdict. Success refers to
// the verification call itself; Data.Status to the payment.
type VerifyResponse struct {
	Success bool       `json:"success"`
	Data    VerifyData `json:"data"`
}

type VerifyData struct {
	Status string `json:"status"`
}

const (
	// terminal payment status as reported by the gateway
	PaymentStatusCompleted = "completed"
)

func (r VerifyResponse) IsPaid() bool {
	return r.Success && r.Data.Status == PaymentStatusCompleted
}
