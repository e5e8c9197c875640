package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutStateTransitions(t *testing.T) {
	tests := []struct {
		from    CheckoutState
		to      CheckoutState
		allowed bool
	}{
		{StateShippingInput, StateOrderSubmitting, true},
		{StateShippingInput, StateRedirecting, false},
		{StateOrderSubmitting, StatePaymentInitializing, true},
		{StateOrderSubmitting, StateShippingInput, true},
		{StatePaymentInitializing, StateRedirecting, true},
		{StatePaymentInitializing, StateShippingInput, true},
		{StateRedirecting, StateOrderSubmitting, false},
		{StateFailed, StateShippingInput, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAdvanceTo(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	session := CheckoutSession{State: StateShippingInput}

	err := session.advanceTo(StateOrderSubmitting, now)
	assert.NoError(t, err)
	assert.Equal(t, StateOrderSubmitting, session.State)
	assert.Equal(t, now, *session.LastModified)

	err = session.advanceTo(StateRedirecting, now)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "illegal checkout transition")
	assert.Equal(t, StateOrderSubmitting, session.State)
}
