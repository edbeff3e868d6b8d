package backend

import "fmt"

// TransportError wraps a failure to reach the store backend or to read its
// response: the request may or may not have been processed remotely.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response from the store backend, carrying the
// optional message from the response body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request with status %d", e.Status)
	}
	return fmt.Sprintf("backend rejected request with status %d: %s", e.Status, e.Message)
}
