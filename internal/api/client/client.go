// Package client implements the HTTP client for the chat backend:
// the transcription operation status endpoint and conversation management.
package client

import (
	"net/http"
	"net/http/cookiejar"
	"strings"

	"chat-transcription-tracker/internal/config"
)

// Client talks to the chat backend over HTTP with credentials included.
type Client struct {
	baseURL    string
	authCookie string
	httpClient *http.Client
}

// New creates a chat backend client. Session cookies set by the backend
// are retained across requests via the cookie jar.
func New(cfg config.ChatAPIConfig) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authCookie: cfg.AuthCookie,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
			Jar:     jar,
		},
	}
}

// apply sets shared headers on an outgoing request.
func (c *Client) apply(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.authCookie != "" {
		req.Header.Set("Cookie", c.authCookie)
	}
}
