package ports

import (
	"errors"
	"fmt"
	"net/http"
)

// RemoteError is a classified non-success response from the remote
// service. The message is the raw server-provided detail so notifications
// show exactly what the service said.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a service 404, which signals a stale
// reference when it concerns the active workspace or kit
func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether err is a service 403, used by sharing links
// to signal an expired or inactive token
func IsForbidden(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == http.StatusForbidden
}
