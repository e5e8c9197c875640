package payapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/selamshop/storefront/lib/myerrors"
	"github.com/selamshop/storefront/lib/myhttpclient"
)

type httpPayer struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewHTTPPayer(baseURL string, sender myhttpclient.HTTPSender) Payer {
	return &httpPayer{
		baseURL: baseURL,
		sender:  sender,
	}
}

func (p *httpPayer) Initialize(c context.Context, request InitializeRequest) (InitializeResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return InitializeResponse{}, myerrors.NewInternalError(err)
	}

	status, respBody, err := p.sender.Send(c, http.MethodPost, p.baseURL+"/payments/initialize", body, nil)
	if err != nil {
		return InitializeResponse{}, myerrors.NewUnavailableError(fmt.Errorf("payment service unreachable: %s", err))
	}
	if status < 200 || status >= 300 {
		return InitializeResponse{}, classifyPaymentError(status, respBody, "payment initialization rejected")
	}

	resp := InitializeResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return InitializeResponse{}, myerrors.NewInternalError(fmt.Errorf("error parsing initialize response: %s", err))
	}

	if !resp.Success || resp.Data.CheckoutURL == "" {
		return InitializeResponse{}, myerrors.NewInternalError(fmt.Errorf("payment initialization returned no checkout url"))
	}

	return resp, nil
}

func (p *httpPayer) Verify(c context.Context, reference string) (VerifyResponse, error) {
	status, respBody, err := p.sender.Send(c, http.MethodGet, fmt.Sprintf("%s/payments/verify/%s", p.baseURL, reference), nil, nil)
	if err != nil {
		return VerifyResponse{}, myerrors.NewUnavailableError(fmt.Errorf("payment service unreachable: %s", err))
	}
	if status < 200 || status >= 300 {
		return VerifyResponse{}, classifyPaymentError(status, respBody, "payment verification rejected")
	}

	resp := VerifyResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return VerifyResponse{}, myerrors.NewInternalError(fmt.Errorf("error parsing verify response: %s", err))
	}

	return resp, nil
}

func classifyPaymentError(status int, body []byte, fallback string) error {
	message := fallback
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
