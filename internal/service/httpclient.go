package service

import (
	"net"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          10,
	IdleConnTimeout:       30 * time.Second,
	TLSHandshakeTimeout:   5 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
	ForceAttemptHTTP2:     true,
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// NewHTTPClient bounds every request by timeout, which covers reading the body.
func NewHTTPClient(timeout time.Duration) *DefaultHTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DefaultHTTPClient{Client: &http.Client{
		Timeout:   timeout,
		Transport: defaultTransport.Clone(),
	}}
}
