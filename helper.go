package stoneconnect

// Adapted from the http helper in https://github.com/evcc-io/evcc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

var (
	JSONContent = "application/json"
	// JSONEncoding specifies application/json
	JSONEncoding = map[string]string{
		"Content-Type": JSONContent,
		"Accept":       JSONContent,
	}
	// AcceptJSON accepting application/json
	AcceptJSON = map[string]string{
		"Accept": JSONContent,
	}
)

// Helper provides utility primitives
type Helper struct {
	httpDoer
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHelper creates http helper for simplified PUT GET logic
func NewHelper(client httpDoer) *Helper {
	return &Helper{
		httpDoer: client,
	}
}

// DoBody executes HTTP request and returns the response body
func (r *Helper) DoBody(req *http.Request) ([]byte, error) {
	resp, err := r.Do(req)
	var body []byte
	if err == nil {
		body, err = ReadBody(resp)
	}
	return body, err
}

// DoJSON executes HTTP request and decodes the JSON response into res. An
// empty or plain-text success body decodes to an empty record, matching the
// device contract for endpoints that acknowledge without a payload.
func (r *Helper) DoJSON(req *http.Request, res any) error {
	b, err := r.DoBody(req)
	if err != nil {
		return err
	}
	lenientUnmarshal(b, res)
	return nil
}

// lenientUnmarshal decodes b into res, leaving res untouched for empty or
// non-JSON bodies.
func lenientUnmarshal(b []byte, res any) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return
	}
	_ = json.Unmarshal(b, res)
}

// ResponseError turns an HTTP status code into one of the typed errors of
// this package
func ResponseError(resp *http.Response) error {
	return responseError(resp.StatusCode, "")
}

func responseError(statusCode int, body string) error {
	switch {
	case statusCode == http.StatusUnauthorized:
		return &AuthenticationError{}
	case statusCode < 200 || statusCode >= 300:
		return &APIError{StatusCode: statusCode, Body: body}
	}
	return nil
}

// ReadBody reads the HTTP response and returns a typed error on response
// codes other than HTTP 2xx. It closes the request body after reading.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}
	return b, responseError(resp.StatusCode, string(b))
}
