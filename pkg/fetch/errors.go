package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the server responds with 404 Not Found.
var ErrNotFound = errors.New("the requested resource doesn't exist")

// StatusError is returned when the server responds with an unexpected HTTP status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("the server returned an error: %s", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func isTemporaryStatus(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600 ||
		statusCode == http.StatusTooManyRequests || statusCode == http.StatusRequestTimeout
}
