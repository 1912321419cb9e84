package driver

import (
	"github.com/sealablab/BPD-001/pkg/log"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// Driver is the capability surface every probe implementation
// satisfies. Concrete probes are selected via the Registry, never by
// code change.
type Driver interface {
	// ID returns the probe identifier the driver was registered under.
	ID() string

	// Initialize performs one-time setup (register handshake, or a
	// simulated no-op). Calling twice without Shutdown fails with
	// ErrAlreadyInitialized.
	Initialize() error

	// Capabilities returns the probe's declared electrical and timing
	// envelope. Pure; always available post-construction.
	Capabilities() model.ProbeCapabilities

	// SetVoltage configures the drive voltage in volts. Fails with
	// ErrOutOfRange outside capabilities, ErrInvalidState unless the
	// hardware is in IDLE.
	SetVoltage(v float64) error

	// SetPulseWidth configures the pulse width in nanoseconds. Same
	// failure modes as SetVoltage.
	SetPulseWidth(ns uint64) error

	// Arm transitions IDLE to ARMED by writing the arm register. Fails
	// with ErrInvalidState from any other state.
	Arm() error

	// Trigger fires the pulse: ARMED to PULSE_ACTIVE. The subsequent
	// transitions to COOLDOWN and back to IDLE are autonomous on the
	// hardware side. Fails with ErrInvalidState if not ARMED.
	Trigger() error

	// Disarm forces a return to IDLE from ARMED or COOLDOWN. From
	// FAULT it clears the latch if the underlying condition is gone,
	// otherwise fails with ErrFaultPersists.
	Disarm() error

	// Status returns a fresh snapshot of the latest register state.
	Status() (model.ProbeStatus, error)

	// Shutdown releases resources, forcing a disarm if needed.
	// Subsequent operations fail with ErrShutdown.
	Shutdown() error
}

// Constructor builds a driver instance over the given register back
// end. Probe implementations register a Constructor with a Registry.
type Constructor func(regs registers.Interface, opts Options) (Driver, error)

// Options carries cross-cutting construction parameters shared by all
// probe constructors.
type Options struct {
	// Logger receives control events. Nil disables logging.
	Logger log.Logger
}
