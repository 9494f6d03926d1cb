package httpclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind string

const (
	KindTimeout            Kind = "TIMEOUT"
	KindNetwork            Kind = "NETWORK_ERROR"
	KindUnexpectedResponse Kind = "UNEXPECTED_RESPONSE"
)

// HTTPKind returns the kind used for a non-2xx server response, e.g. HTTP_404.
func HTTPKind(status int) Kind {
	return Kind(fmt.Sprintf("HTTP_%d", status))
}

// RequestError is the single error type returned for every failed request.
// StatusCode, Code and Body are populated when the server produced a response.
type RequestError struct {
	Kind       Kind
	StatusCode int
	Code       string // machine-readable code from the response envelope
	Message    string // human-readable message extracted from the envelope
	Body       []byte // raw response body
	Err        error  // underlying transport error, if any
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err.Error())
	}
	return string(e.Kind)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the request exceeded the configured deadline.
func (e *RequestError) IsTimeout() bool {
	return e.Kind == KindTimeout
}

// IsNetwork reports whether the request failed before a response arrived.
func (e *RequestError) IsNetwork() bool {
	return e.Kind == KindNetwork
}

// IsStatus reports whether the server responded with the given status code.
func (e *RequestError) IsStatus(status int) bool {
	return e.StatusCode == status
}

// AsRequestError unwraps err into a *RequestError when possible.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
