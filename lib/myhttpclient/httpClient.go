package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	timeout = 5 * time.Second
)

type jsonHTTPClient struct {
	defaultHeaders map[string]string
}

func newJSONHTTPClient() *jsonHTTPClient {
	return &jsonHTTPClient{
		defaultHeaders: map[string]string{},
	}
}

// WithBearerToken makes every subsequent request carry an Authorization header
func (c *jsonHTTPClient) WithBearerToken(token string) *jsonHTTPClient {
	c.defaultHeaders["Authorization"] = "Bearer " + token
	return c
}

func (c jsonHTTPClient) Send(ctx context.Context, method string, url string, body []byte, headers map[string]string) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s %s: %s", method, url, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for name, value := range c.defaultHeaders {
		httpReq.Header.Set(name, value)
	}
	for name, value := range headers {
		httpReq.Header.Set(name, value)
	}

	log.Printf("HTTP request: %s %s", method, url)

	httpClient := &http.Client{
		Timeout: timeout,
	}
	httpResp, err := httpClient.Do(httpReq)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error sending %s %s: %s", method, url, err)
	}

	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error reading response %s %s: %s", method, url, err)
	}

	log.Printf("HTTP resp: %d", httpResp.StatusCode)

	return httpResp.StatusCode, respPayload, nil
}
