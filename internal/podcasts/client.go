package podcasts

import (
	"net"
	"net/http"
	"time"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "cadence/0.1 (terminal music player)"
)

// sharedTransport is a tuned HTTP transport reused by all podcast
// clients so connections to the search and feed hosts are pooled.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   20,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   fetchTimeout,
		Transport: sharedTransport,
	}
}
