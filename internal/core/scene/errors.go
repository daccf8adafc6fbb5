package scene

import "errors"

var (
	ErrDuplicateBody = errors.New("duplicate body name")
	ErrUnknownParent = errors.New("unknown parent body")
	ErrParentCycle   = errors.New("parent chain forms a cycle")
	ErrInvalidScale  = errors.New("body scale must be positive")
)
