package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient creates an Elasticsearch client with optional basic auth.
// A nil client with nil error is returned when no address is configured.
func NewESClient(addrs []string, username, password string, timeout time.Duration) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}
