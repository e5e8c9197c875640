package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myhttpclient"
	"github.com/selamshop/storefront/services/shopapi"
)

// OrderPlacer turns the current cart into an order on the backend. The
// backend snapshots prices and computes the authoritative totals.
type OrderPlacer interface {
	PlaceOrder(c context.Context, shopperUID string, request shopapi.CreateOrderRequest) (shopapi.Order, error)
}

type httpOrderPlacer struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewHTTPOrderPlacer(baseURL string, sender myhttpclient.HTTPSender) OrderPlacer {
	return &httpOrderPlacer{
		baseURL: baseURL,
		sender:  sender,
	}
}

func (op *httpOrderPlacer) PlaceOrder(c context.Context, shopperUID string, request shopapi.CreateOrderRequest) (shopapi.Order, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return shopapi.Order{}, myerrors.NewInternalError(err)
	}

	status, respBody, err := op.sender.Send(c, http.MethodPost, op.baseURL+"/orders", body,
		map[string]string{"X-Shopper-UID": shopperUID})
	if err != nil {
		return shopapi.Order{}, myerrors.NewUnavailableError(fmt.Errorf("order service unreachable: %s", err))
	}
	if status < 200 || status >= 300 {
		return shopapi.Order{}, classifyOrderError(status, respBody)
	}

	resp := struct {
		Order shopapi.Order `json:"order"`
	}{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return shopapi.Order{}, myerrors.NewInternalError(fmt.Errorf("error parsing order response: %s", err))
	}
	if resp.Order.UID == "" {
		return shopapi.Order{}, myerrors.NewInternalError(fmt.Errorf("order response carries no order id"))
	}

	return resp.Order, nil
}

// classifyOrderError keeps the backend's message verbatim so that rejections
// like a mid-checkout stock change reach the shopper unaltered.
func classifyOrderError(status int, body []byte) error {
	message := "order creation rejected"
	resp := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		message = resp.Message
	}

	if status >= 400 && status < 500 {
		return myerrors.NewInvalidInputErrorf("%s", message)
	}

	return myerrors.NewInternalError(fmt.Errorf("%s", message))
}
