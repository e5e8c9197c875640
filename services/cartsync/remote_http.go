package cartsync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myhttpclient"
	"github.com/selamshop/storefront/services/shopapi"
)

type httpRemoteCart struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewHTTPRemoteCart(baseURL string, sender myhttpclient.HTTPSender) RemoteCart {
	return &httpRemoteCart{
		baseURL: baseURL,
		sender:  sender,
	}
}

type cartResponse struct {
	Products []shopapi.CartLine `json:"products"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (rc *httpRemoteCart) Fetch(c context.Context, shopperUID string) ([]shopapi.CartLine, error) {
	return rc.roundTrip(c, shopperUID, http.MethodGet, rc.baseURL+"/cart", nil)
}

func (rc *httpRemoteCart) Add(c context.Context, shopperUID string, productUID string, quantity int) ([]shopapi.CartLine, error) {
	body, err := json.Marshal(struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}{ProductID: productUID, Quantity: quantity})
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return rc.roundTrip(c, shopperUID, http.MethodPost, rc.baseURL+"/cart/add", body)
}

func (rc *httpRemoteCart) Update(c context.Context, shopperUID string, productUID string, quantity int) ([]shopapi.CartLine, error) {
	body, err := json.Marshal(struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity})
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	return rc.roundTrip(c, shopperUID, http.MethodPatch, fmt.Sprintf("%s/cart/update/%s", rc.baseURL, productUID), body)
}

func (rc *httpRemoteCart) Remove(c context.Context, shopperUID string, productUID string) ([]shopapi.CartLine, error) {
	return rc.roundTrip(c, shopperUID, http.MethodDelete, fmt.Sprintf("%s/cart/remove/%s", rc.baseURL, productUID), nil)
}

func (rc *httpRemoteCart) Clear(c context.Context, shopperUID string) error {
	_, err := rc.roundTrip(c, shopperUID, http.MethodDelete, rc.baseURL+"/cart/clear", nil)
	return err
}

func (rc *httpRemoteCart) roundTrip(c context.Context, shopperUID string, method string, url string, body []byte) ([]shopapi.CartLine, error) {
	status, respBody, err := rc.sender.Send(c, method, url, body, map[string]string{"X-Shopper-UID": shopperUID})
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("cart service unreachable: %s", err))
	}

	if status < 200 || status >= 300 {
		return nil, classifyRemoteError(status, respBody, "cart operation rejected")
	}

	resp := cartResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing cart response: %s", err))
	}

	return resp.Products, nil
}

// classifyRemoteError surfaces the backend's own message verbatim when it
// provides one, so that business-rule rejections (out of stock, price
// changed) reach the shopper unaltered.
func classifyRemoteError(status int, body []byte, fallback string) error {
	message := fallback
	resp := errorResponse{}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		message = resp.Message
	}

	if status >= 400 && status < 500 {
		return myerrors.NewInvalidInputErrorf("%s", message)
	}

	return myerrors.NewInternalError(fmt.Errorf("%s", message))
}
