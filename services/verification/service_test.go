package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/mypublisher"
	"github.com/selamshop/storefront/lib/mystore"
	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/services/checkout/checkoutevents"
	"github.com/selamshop/storefront/services/payapi"
)

var (
	shopperUID = "shopper_123"
	reference  = "trx_abc"

	successToken = ResumeToken{Reference: reference, GatewayStatus: "success"}
)

func TestVerificationService(t *testing.T) {
	t.Run("Verify, confirmed payment clears the cart and publishes completion", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		deps.payer.EXPECT().Verify(c, reference).Return(payapi.VerifyResponse{
			Success: true,
			Data:    payapi.VerifyData{Status: payapi.PaymentStatusCompleted},
		}, nil)
		deps.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			ShopperUID:       shopperUID,
			PaymentReference: reference,
		}).Return(nil)
		deps.cart.EXPECT().Clear(c, shopperUID).Return(nil)

		// when
		record, err := service.Verify(c, shopperUID, successToken)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateSucceeded, record.State)
		assert.Equal(t, 1, record.Attempts)

		stored, found, _ := deps.recordStore.Get(c, reference)
		assert.True(t, found)
		assert.True(t, stored.Succeeded())
	})

	t.Run("Verify, missing reference fails without touching the backend", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, _ := setupVerification(t, c, ctrl)

		// when
		record, err := service.Verify(c, shopperUID, ResumeToken{})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, record.State)
		assert.Equal(t, "reference not found", record.Message)
	})

	t.Run("Verify, gateway-admitted failure skips the verify call", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// when: no payer.Verify, no cart.Clear expected
		record, err := service.Verify(c, shopperUID, ResumeToken{Reference: reference, GatewayStatus: "cancelled"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, record.State)
		assert.Contains(t, record.Message, "cancelled")
	})

	t.Run("Verify, positive gateway status alone proves nothing", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect: backend says no, so the cart stays untouched
		deps.payer.EXPECT().Verify(c, reference).Return(payapi.VerifyResponse{
			Success: false,
		}, nil)

		// when
		record, err := service.Verify(c, shopperUID, successToken)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, record.State)
	})

	t.Run("Verify, pending payment is not treated as paid", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		deps.payer.EXPECT().Verify(c, reference).Return(payapi.VerifyResponse{
			Success: true,
			Data:    payapi.VerifyData{Status: "pending"},
		}, nil)

		// when
		record, err := service.Verify(c, shopperUID, successToken)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, record.State)
	})

	t.Run("Verify, backend outage records a failed attempt", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		deps.payer.EXPECT().Verify(c, reference).Return(payapi.VerifyResponse{},
			myerrors.NewUnavailableError(assert.AnError))

		// when
		record, err := service.Verify(c, shopperUID, successToken)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateFailed, record.State)
		assert.Equal(t, "could not verify payment", record.Message)
	})

	t.Run("Verify, settled success is not re-verified on refresh", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect: the whole pipeline runs exactly once across two visits
		deps.payer.EXPECT().Verify(c, reference).Return(payapi.VerifyResponse{
			Success: true,
			Data:    payapi.VerifyData{Status: payapi.PaymentStatusCompleted},
		}, nil).Times(1)
		deps.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil).Times(1)
		deps.cart.EXPECT().Clear(c, shopperUID).Return(nil).Times(1)

		// when
		first, err := service.Verify(c, shopperUID, successToken)
		assert.NoError(t, err)
		second, errAgain := service.Verify(c, shopperUID, successToken)

		// then
		assert.NoError(t, errAgain)
		assert.Equal(t, StateSucceeded, first.State)
		assert.Equal(t, StateSucceeded, second.State)
		assert.Equal(t, first.Attempts, second.Attempts)
	})

	t.Run("Verify, failed cart clear does not undo the confirmation", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		service, deps := setupVerification(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		deps.payer.EXPECT().Verify(c, reference).Return(payapi.VerifyResponse{
			Success: true,
			Data:    payapi.VerifyData{Status: payapi.PaymentStatusCompleted},
		}, nil)
		deps.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil)
		deps.cart.EXPECT().Clear(c, shopperUID).Return(myerrors.NewUnavailableError(assert.AnError))

		// when
		record, err := service.Verify(c, shopperUID, successToken)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateSucceeded, record.State)
	})
}

type verificationDeps struct {
	recordStore mystore.Store[VerificationRecord]
	payer       *payapi.MockPayer
	cart        *MockCartClearer
	publisher   *mypublisher.MockPublisher
	nower       *mytime.MockNower
}

func setupVerification(t *testing.T, c context.Context, ctrl *gomock.Controller) (*VerificationService, verificationDeps) {
	recordStore, _, err := mystore.NewInMemoryStore[VerificationRecord](c)
	assert.NoError(t, err)

	deps := verificationDeps{
		recordStore: recordStore,
		payer:       payapi.NewMockPayer(ctrl),
		cart:        NewMockCartClearer(ctrl),
		publisher:   mypublisher.NewMockPublisher(ctrl),
		nower:       mytime.NewMockNower(ctrl),
	}

	service := NewService(deps.recordStore, deps.payer, deps.cart, deps.publisher, deps.nower)

	return service, deps
}
