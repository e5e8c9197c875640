package verification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/selamshop/storefront/lib/mytime"
	"github.com/selamshop/storefront/services/payapi"
)

func TestVerificationWeb(t *testing.T) {
	t.Run("Completion page, confirmed payment", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, deps := setupVerificationWeb(t, c, ctrl)
		deps.nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		// expect
		deps.payer.EXPECT().Verify(gomock.Any(), reference).Return(payapi.VerifyResponse{
			Success: true,
			Data:    payapi.VerifyData{Status: payapi.PaymentStatusCompleted},
		}, nil)
		deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		deps.cart.EXPECT().Clear(gomock.Any(), shopperUID).Return(nil)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/checkout/completed?trx_ref=trx_abc&status=success", nil)
		request.Header.Set("X-Shopper-UID", shopperUID)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), string(StateSucceeded))
	})

	t.Run("Completion page, missing reference still renders an outcome", func(t *testing.T) {
		c := context.TODO()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, _ := setupVerificationWeb(t, c, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodGet, "/checkout/completed", nil)
		request.Header.Set("X-Shopper-UID", shopperUID)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), "reference not found")
	})
}

func setupVerificationWeb(t *testing.T, c context.Context, ctrl *gomock.Controller) (*mux.Router, verificationDeps) {
	service, deps := setupVerification(t, c, ctrl)

	router := mux.NewRouter()
	NewWebService(service).RegisterEndpoints(c, router)

	return router, deps
}
