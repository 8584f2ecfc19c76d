package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceExists is returned when registering a device whose ID is
	// already taken.
	ErrDeviceExists = errors.New("device: already exists")

	// ErrTaskNotFound is returned when a scheduled task ID does not exist
	// on the device it was addressed to.
	ErrTaskNotFound = errors.New("device: task not found")
)
