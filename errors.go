package noisefx

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrDeviceLost is reported by a device or kernel whose rendering
	// context is no longer usable. The graph must be destroyed and
	// recreated on a new device.
	ErrDeviceLost = errors.New("noisefx: device lost")

	// ErrKernelUnavailable is returned when a device cannot provide a
	// noise kernel.
	ErrKernelUnavailable = errors.New("noisefx: noise kernel unavailable")

	// ErrInvalidSize is returned when an output image does not match the
	// destination image.
	ErrInvalidSize = errors.New("noisefx: invalid image size")

	// ErrNoGraph is the panic value for operations on a nil or destroyed
	// graph. Calling them is a programming error.
	ErrNoGraph = errors.New("noisefx: graph is not built")
)

// ResourceError reports a failure to acquire or use device resources.
// The core never retries; callers decide whether to try again, usually
// with a new device.
type ResourceError struct {
	Op  string // operation that failed, e.g. "create graph"
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("noisefx: %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func resourceError(op string, err error) error {
	var re *ResourceError
	if errors.As(err, &re) {
		return err
	}
	return &ResourceError{Op: op, Err: err}
}

// IsDeviceLost reports whether err indicates a lost device.
func IsDeviceLost(err error) bool {
	return errors.Is(err, ErrDeviceLost)
}
