package resilience

// isClientError is implemented by errors that represent caller mistakes
// (bad input, invalid state) rather than transient failures. Such errors
// are never retried.
type isClientError interface {
	IsClientError() bool
}

// ClientError marks an error as non-retryable caller error.
type ClientError struct {
	msg string
}

// NewClientError creates a ClientError with the given message.
func NewClientError(msg string) *ClientError {
	return &ClientError{msg: msg}
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return "client error: " + e.msg
}

// IsClientError marks this error as a client error.
func (e *ClientError) IsClientError() bool {
	return true
}
