package api

import "time"

// DefaultBaseURL is the API target used when the config does not set one.
const DefaultBaseURL = "http://localhost:8080"

// NewDefaultClient builds a client pointed at the default API URL.
func NewDefaultClient(apiKey string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, apiKey, timeout...)
}
