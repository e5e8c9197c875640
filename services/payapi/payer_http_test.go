package payapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myhttpclient"
)

func TestHTTPPayer(t *testing.T) {
	c := context.TODO()

	t.Run("Initialize returns hosted checkout url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sender := myhttpclient.NewMockHTTPSender(ctrl)
		payer := NewHTTPPayer("http://backend", sender)

		sender.EXPECT().Send(c, http.MethodPost, "http://backend/payments/initialize", gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"success":true,"data":{"checkoutUrl":"https://checkout.chapa.co/pay/abc"}}`), nil)

		resp, err := payer.Initialize(c, InitializeRequest{
			OrderUID: "order_1", Amount: 165000, Currency: "ETB",
			Email: "almaz@example.com", FirstName: "Almaz", LastName: "Bekele", Phone: "+251911223344",
		})

		assert.NoError(t, err)
		assert.Equal(t, "https://checkout.chapa.co/pay/abc", resp.Data.CheckoutURL)
	})

	t.Run("Initialize without checkout url is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sender := myhttpclient.NewMockHTTPSender(ctrl)
		payer := NewHTTPPayer("http://backend", sender)

		sender.EXPECT().Send(c, http.MethodPost, "http://backend/payments/initialize", gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"success":false,"data":{}}`), nil)

		_, err := payer.Initialize(c, InitializeRequest{OrderUID: "order_1"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, myerrors.GetHttpStatus(err))
	})

	t.Run("Verify reports the payment verdict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sender := myhttpclient.NewMockHTTPSender(ctrl)
		payer := NewHTTPPayer("http://backend", sender)

		sender.EXPECT().Send(c, http.MethodGet, "http://backend/payments/verify/trx_abc", gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"success":true,"data":{"status":"completed"}}`), nil)

		resp, err := payer.Verify(c, "trx_abc")

		assert.NoError(t, err)
		assert.True(t, resp.IsPaid())
	})

	t.Run("Verify of a pending payment is not paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sender := myhttpclient.NewMockHTTPSender(ctrl)
		payer := NewHTTPPayer("http://backend", sender)

		sender.EXPECT().Send(c, http.MethodGet, "http://backend/payments/verify/trx_abc", gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"success":true,"data":{"status":"pending"}}`), nil)

		resp, err := payer.Verify(c, "trx_abc")

		assert.NoError(t, err)
		assert.False(t, resp.IsPaid())
	})

	t.Run("Transport failure is reported as unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sender := myhttpclient.NewMockHTTPSender(ctrl)
		payer := NewHTTPPayer("http://backend", sender)

		sender.EXPECT().Send(c, http.MethodGet, "http://backend/payments/verify/trx_abc", gomock.Any(), gomock.Any()).
			Return(0, nil, fmt.Errorf("connection refused"))

		_, err := payer.Verify(c, "trx_abc")

		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, myerrors.GetHttpStatus(err))
	})
}
