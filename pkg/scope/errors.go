package scope

import "errors"

var (
	// ErrContainerClosed is returned when accessing a container after Close.
	ErrContainerClosed = errors.New("scope container is closed")
)
