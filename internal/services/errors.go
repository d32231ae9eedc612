package services

import (
	"errors"
	"fmt"
)

// SlackError is an ok:false reply from the Web API. The call reached Slack and
// was rejected (channel_not_found, message_not_found, invalid_auth, ...).
type SlackError struct {
	Method string
	Code   string
}

func (e *SlackError) Error() string {
	return fmt.Sprintf("An API error occurred: %s", e.Code)
}

// StatusError is a non-2xx HTTP reply, typically 429 or a 5xx from Slack.
type StatusError struct {
	Method     string
	StatusCode int
	RetryAfter string
}

func (e *StatusError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("slack %s: unexpected status %d (retry after %ss)", e.Method, e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("slack %s: unexpected status %d", e.Method, e.StatusCode)
}

// IsAPIError reports whether err carries a Slack-side rejection rather than a
// transport failure.
func IsAPIError(err error) bool {
	var apiErr *SlackError
	return errors.As(err, &apiErr)
}
