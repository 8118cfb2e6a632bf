package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	clientRetryCount   = 2
	clientRetryWait    = 200 * time.Millisecond
	clientMaxRetryWait = 2 * time.Second
)

// HTTPClient embeds *resty.Client so callers use the resty request builder
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a resty client that retries idempotent requests
// (GET, PUT, DELETE) on transport errors and 502/503/504 responses. Uploads
// and sign-in requests are never retried.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", "note-client").
		SetRetryCount(clientRetryCount).
		SetRetryWaitTime(clientRetryWait).
		SetRetryMaxWaitTime(clientMaxRetryWait).
		AddRetryCondition(shouldRetry)

	return &HTTPClient{Client: client}
}

func shouldRetry(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil {
		return false
	}

	switch resp.Request.Method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
	default:
		return false
	}

	if err != nil {
		return true
	}

	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
