package stream

import "errors"

var (
	ErrHubClosed      = errors.New("stream hub is closed")
	ErrInvalidMessage = errors.New("invalid client message")
	ErrNoPicker       = errors.New("picking is not available")
)
