package verification

import (
	"context"
	"fmt"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/mylog"
	"github.com/selamshop/storefront/lib/mypublisher"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/services/checkout/checkoutevents"
	"github.com/selamshop/storefront/services/payapi"
)

// CartClearer is the slice of the cart service the verification needs: a
// paid cart must be emptied.
type CartClearer interface {
	Clear(c context.Context, shopperUID string) error
}

// VerificationService settles the outcome of a hosted payment once the
// gateway sends the shopper back. The backend verify call is the only
// authority on whether money moved; the gateway's own status query parameter
// can at most short-circuit an admitted failure.
type VerificationService struct {
	recordStore mystore.Store[VerificationRecord]
	payer       payapi.Payer
	cart        CartClearer
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	logger      mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(recordStore mystore.Store[VerificationRecord], payer payapi.Payer, cart CartClearer, publisher mypublisher.Publisher, nower mytime.Nower) *VerificationService {
	return &VerificationService{
		recordStore: recordStore,
		payer:       payer,
		cart:        cart,
		publisher:   publisher,
		nower:       nower,
		logger:      mylog.New("verification"),
	}
}

// Verify settles one payment reference. It is safe to call repeatedly for
// the same reference: a page refresh on the completion page re-runs it.
func (s *VerificationService) Verify(c context.Context, shopperUID string, token ResumeToken) (VerificationRecord, error) {
	if token.Reference == "" {
		s.logger.Log(c, shopperUID, mylog.SeverityWarn, "Completion page visited without payment reference")
		return VerificationRecord{
			State:   StateFailed,
			Message: "reference not found",
		}, nil
	}

	existing, found, err := s.recordStore.Get(c, token.Reference)
	if err != nil {
		return VerificationRecord{}, myerrors.NewInternalError(err)
	}
	if found && existing.Succeeded() {
		// already settled: nothing to verify, clear or publish again
		s.logger.Log(c, token.Reference, mylog.SeverityInfo, "Payment %s already verified", token.Reference)
		return existing, nil
	}

	if token.IndicatesFailure() {
		s.logger.Log(c, token.Reference, mylog.SeverityInfo, "Gateway reports %s for payment %s, skipping verification", token.GatewayStatus, token.Reference)
		return s.storeOutcome(c, shopperUID, token, StateFailed, fmt.Sprintf("payment was not completed (%s)", token.GatewayStatus))
	}

	resp, err := s.payer.Verify(c, token.Reference)
	if err != nil {
		s.logger.Log(c, token.Reference, mylog.SeverityWarn, "Error verifying payment %s: %s", token.Reference, err)
		return s.storeOutcome(c, shopperUID, token, StateFailed, "could not verify payment")
	}

	if !resp.IsPaid() {
		s.logger.Log(c, token.Reference, mylog.SeverityInfo, "Payment %s not confirmed: success=%t status=%s", token.Reference, resp.Success, resp.Data.Status)
		return s.storeOutcome(c, shopperUID, token, StateFailed, "payment was not completed")
	}

	record, err := s.storeOutcome(c, shopperUID, token, StateSucceeded, "payment confirmed")
	if err != nil {
		return record, err
	}

	// the order is paid either way; a failed clear only leaves a stale cart
	err = s.cart.Clear(c, shopperUID)
	if err != nil {
		s.logger.Log(c, token.Reference, mylog.SeverityWarn, "Error clearing cart of shopper %s after payment %s: %s", shopperUID, token.Reference, err)
	}

	return record, nil
}

func (s *VerificationService) storeOutcome(c context.Context, shopperUID string, token ResumeToken, state VerificationState, message string) (VerificationRecord, error) {
	now := s.nower.Now()

	var record VerificationRecord
	err := s.recordStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		existing, found, err := s.recordStore.Get(c, token.Reference)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		record = VerificationRecord{
			Reference:     token.Reference,
			ShopperUID:    shopperUID,
			State:         state,
			Message:       message,
			GatewayStatus: token.GatewayStatus,
			Attempts:      existing.Attempts + 1,
			CreatedAt:     now,
			LastModified:  &now,
		}
		if found {
			record.CreatedAt = existing.CreatedAt
		}

		err = s.recordStore.Put(c, token.Reference, record)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if state == StateSucceeded && !existing.Succeeded() {
			// first confirmation of this reference
			err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
				ShopperUID:       shopperUID,
				PaymentReference: token.Reference,
			})
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
			}
		}

		return nil
	})
	if err != nil {
		return VerificationRecord{}, err
	}

	return record, nil
}
