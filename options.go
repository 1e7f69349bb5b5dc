package stoneconnect

import (
	"log"
	"net/http"
)

type Logger interface {
	Printf(msg string, arg ...any)
}

type Option func(*Client)

func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHttpClient supplies an external http client. The client never closes a
// supplied session; the caller keeps ownership and must configure TLS and
// timeouts itself.
func WithHttpClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
		c.ownedClient = false
	}
}

// WithRequestLogging logs every request and response of an owned http session
// to the given logger. It has no effect on a supplied session.
func WithRequestLogging(logger *log.Logger) Option {
	return func(c *Client) {
		c.reqLog = logger
	}
}
