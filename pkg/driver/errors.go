package driver

import "errors"

// Driver and registry errors. All are local, recoverable conditions:
// after any failed call the driver remains in its pre-call state. The
// one exception is a hardware-detected fault, which always wins over
// the in-flight operation.
var (
	// ErrOutOfRange indicates a requested voltage or pulse width lies
	// outside the probe's declared capabilities.
	ErrOutOfRange = errors.New("value outside probe capabilities")

	// ErrInvalidState indicates the operation is not legal in the
	// current hardware state.
	ErrInvalidState = errors.New("operation not legal in current state")

	// ErrAlreadyInitialized indicates Initialize was called twice
	// without an intervening Shutdown.
	ErrAlreadyInitialized = errors.New("driver already initialized")

	// ErrShutdown indicates the driver has been shut down.
	ErrShutdown = errors.New("driver is shut down")

	// ErrFaultPersists indicates a disarm was commanded in FAULT but
	// the underlying fault condition is still present.
	ErrFaultPersists = errors.New("hardware fault persists")

	// ErrDuplicateID indicates a probe ID was registered twice.
	ErrDuplicateID = errors.New("probe id already registered")

	// ErrUnknownID indicates no driver is registered under the probe ID.
	ErrUnknownID = errors.New("unknown probe id")

	// ErrFaulted indicates a wait helper observed the probe entering
	// FAULT before reaching the awaited state.
	ErrFaulted = errors.New("probe entered fault during wait")
)
