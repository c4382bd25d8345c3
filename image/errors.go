package image

import (
	"errors"

	"github.com/kpfaulkner/pixmem/memory"
)

var (
	// ErrAllocationFailure is returned when an allocator cannot provide memory.
	ErrAllocationFailure = memory.ErrAllocationFailure

	ErrLayoutMismatch         = errors.New("layout mismatch")
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrOutOfRange             = errors.New("out of range")
	ErrInvalidOperationOnView = errors.New("invalid operation on view")
)
