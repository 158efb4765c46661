package client

import (
	"errors"
	"fmt"
)

var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx answer from the portal server.
type APIError struct {
	Status  int    `json:"code"`
	Kind    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.Status, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind string) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == kind
}
