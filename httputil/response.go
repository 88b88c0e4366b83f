package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// StatusError is returned for any non-2xx API response. It keeps the
// status code and (possibly truncated) body for diagnostics.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected response status code %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected response status code %d with body: %s", e.StatusCode, string(e.Body))
}

const maxErrBodyLen = 4096

// NewStatusError drains up to maxErrBodyLen bytes of the response body
// into the returned error.
func NewStatusError(resp *http.Response) *StatusError {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyLen))
	if nil != err {
		b = nil
	}

	return &StatusError{StatusCode: resp.StatusCode, Body: b}
}

func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}

	return false
}

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	respBody, err := io.ReadAll(resp.Body)
	if nil != err {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected empty response body")
		}

		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	return respBody, nil
}
