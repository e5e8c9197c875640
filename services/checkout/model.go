package checkout

import (
	"fmt"
	"time"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/services/shopapi"
)

// CheckoutState is the explicit phase of a checkout attempt. Transitions are
// restricted to the ones listed in validTransitions; everything else is a
// programming error surfaced at runtime.
type CheckoutState string

const (
	StateShippingInput       CheckoutState = "shipping_input"
	StateOrderSubmitting     CheckoutState = "order_submitting"
	StatePaymentInitializing CheckoutState = "payment_initializing"
	StateRedirecting         CheckoutState = "redirecting"
	StateFailed              CheckoutState = "failed"
)

var validTransitions = map[CheckoutState][]CheckoutState{
	StateShippingInput:       {StateOrderSubmitting},
	StateOrderSubmitting:     {StatePaymentInitializing, StateShippingInput, StateFailed},
	StatePaymentInitializing: {StateRedirecting, StateShippingInput, StateFailed},
	StateRedirecting:         {},
	StateFailed:              {},
}

func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CheckoutSession records one checkout attempt of one shopper. A session that
// bounced back to StateShippingInput keeps the failure message so the form
// can show it.
type CheckoutSession struct {
	UID            string
	ShopperUID     string
	State          CheckoutState
	Shipping       shopapi.ShippingForm
	OrderUID       string
	CheckoutURL    string
	FailureMessage string
	CreatedAt      time.Time
	LastModified   *time.Time
}

func (s *CheckoutSession) advanceTo(next CheckoutState, now time.Time) error {
	if !s.State.CanTransitionTo(next) {
		return myerrors.NewInternalError(fmt.Errorf("illegal checkout transition from %s to %s", s.State, next))
	}
	s.State = next
	s.LastModified = &now
	return nil
}
