package checkout

import (
	"context"
	"fmt"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/services/checkout/checkoutevents"
	"github.com/selamshop/storefront/services/payapi"
	"github.com/selamshop/storefront/services/shopapi"
)

// StartCheckout runs the full happy path in one call: validate the shipping
// form, place the order, initialize the payment and return a session in
// StateRedirecting carrying the hosted payment url. On a failure along the
// way the session bounces back to StateShippingInput with the reason, so the
// shopper can retry without losing the form.
func (s *CheckoutService) StartCheckout(c context.Context, shopperUID string, form shopapi.ShippingForm, returnURL string) (CheckoutSession, error) {
	if shopperUID == "" {
		return CheckoutSession{}, myerrors.NewAuthenticationError(fmt.Errorf("sign in to check out"))
	}

	err := form.Validate()
	if err != nil {
		return CheckoutSession{}, err
	}

	// one checkout at a time per shopper
	guardKey := "checkout:" + shopperUID
	if !s.guard.TryAcquire(guardKey) {
		return CheckoutSession{}, myerrors.NewConflictError(fmt.Errorf("checkout already in progress"))
	}
	defer s.guard.Release(guardKey)

	snapshot, err := s.cart.Snapshot(c, shopperUID)
	if err != nil {
		return CheckoutSession{}, err
	}
	if snapshot.IsEmpty() {
		return CheckoutSession{}, myerrors.NewInvalidInputErrorf("cart is empty")
	}

	now := s.nower.Now()
	session := CheckoutSession{
		UID:        s.uuider.Create(),
		ShopperUID: shopperUID,
		State:      StateShippingInput,
		Shipping:   form,
		CreatedAt:  now,
	}

	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Start checkout %s for shopper %s (%d cents)",
		session.UID, shopperUID, snapshot.TotalAmount())

	err = s.advanceAndStore(c, &session, StateOrderSubmitting)
	if err != nil {
		return session, err
	}

	err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
		CheckoutUID:   session.UID,
		ShopperUID:    shopperUID,
		AmountInCents: snapshot.TotalAmount(),
		Currency:      snapshot.Currency,
	})
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityWarn, "Error publishing event: %s", err)
	}

	order, err := s.orderPlacer.PlaceOrder(c, shopperUID, shopapi.CreateOrderRequest{
		ShippingAddress: form.Address,
		PaymentMethod:   form.PaymentMethod,
	})
	if err != nil {
		return s.abort(c, session, err)
	}

	session.OrderUID = order.UID
	err = s.advanceAndStore(c, &session, StatePaymentInitializing)
	if err != nil {
		return session, err
	}

	initResp, err := s.payer.Initialize(c, payapi.InitializeRequest{
		OrderUID:  order.UID,
		Amount:    order.TotalAmount,
		Currency:  order.Currency,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Phone:     form.Phone,
		ReturnURL: returnURL,
	})
	if err != nil {
		// the placed order stays behind unpaid; the backend expires those
		return s.abort(c, session, err)
	}

	session.CheckoutURL = initResp.Data.CheckoutURL
	err = s.advanceAndStore(c, &session, StateRedirecting)
	if err != nil {
		return session, err
	}

	s.logger.Log(c, session.UID, mylog.SeverityInfo, "Checkout %s redirecting to hosted payment page", session.UID)

	return session, nil
}

func (s *CheckoutService) GetCheckout(c context.Context, checkoutUID string) (CheckoutSession, error) {
	session, found, err := s.sessionStore.Get(c, checkoutUID)
	if err != nil {
		return CheckoutSession{}, myerrors.NewInternalError(err)
	}
	if !found {
		return CheckoutSession{}, myerrors.NewNotFoundError(fmt.Errorf("checkout %s not found", checkoutUID))
	}

	return session, nil
}

// abort bounces the session back to the shipping form, keeping the reason
// verbatim so the form can show what the backend said.
func (s *CheckoutService) abort(c context.Context, session CheckoutSession, cause error) (CheckoutSession, error) {
	s.logger.Log(c, session.UID, mylog.SeverityWarn, "Checkout %s aborted in state %s: %s", session.UID, session.State, cause)

	phase := session.State
	session.FailureMessage = unwrappedMessage(cause)

	err := s.advanceAndStore(c, &session, StateShippingInput)
	if err != nil {
		return session, err
	}

	err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutAborted{
		CheckoutUID: session.UID,
		ShopperUID:  session.ShopperUID,
		Phase:       string(phase),
		Reason:      session.FailureMessage,
	})
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityWarn, "Error publishing event: %s", err)
	}

	return session, cause
}

func (s *CheckoutService) advanceAndStore(c context.Context, session *CheckoutSession, next CheckoutState) error {
	err := session.advanceTo(next, s.nower.Now())
	if err != nil {
		return err
	}

	err = s.sessionStore.Put(c, session.UID, *session)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}

// unwrappedMessage strips the http-status wrapper so the shopper sees the
// backend's own words.
func unwrappedMessage(err error) string {
	type unwrapper interface {
		Unwrap() error
	}
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return inner.Error()
		}
	}
	return err.Error()
}
