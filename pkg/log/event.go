package log

import "time"

// Event represents a control log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the control session (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// ProbeID is the probe identifier the event concerns.
	ProbeID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Register    *RegisterEvent    `cbor:"10,keyasint,omitempty"` // Register boundary traffic
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Hardware FSM transitions
	Validation  *ValidationEvent  `cbor:"12,keyasint,omitempty"` // Compatibility decisions
	Fault       *FaultEvent       `cbor:"13,keyasint,omitempty"` // Latched hardware faults
	Lifecycle   *LifecycleEvent   `cbor:"14,keyasint,omitempty"` // Driver lifecycle
}

// Category classifies a control event.
type Category uint8

const (
	// CategoryRegister is raw register boundary traffic.
	CategoryRegister Category = 1

	// CategoryState is a hardware state machine transition observed by
	// the driver.
	CategoryState Category = 2

	// CategoryValidation is a compatibility validation decision.
	CategoryValidation Category = 3

	// CategoryFault is a latched hardware fault.
	CategoryFault Category = 4

	// CategoryLifecycle is a driver lifecycle event (initialize,
	// shutdown, session open/close).
	CategoryLifecycle Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRegister:
		return "register"
	case CategoryState:
		return "state"
	case CategoryValidation:
		return "validation"
	case CategoryFault:
		return "fault"
	case CategoryLifecycle:
		return "lifecycle"
	default:
		return "unknown"
	}
}

// RegisterEvent captures one register access.
type RegisterEvent struct {
	// Name is the register name.
	Name string `cbor:"1,keyasint"`

	// Value is the value written or read.
	Value uint32 `cbor:"2,keyasint"`

	// Write is true for SetRegister, false for GetRegister.
	Write bool `cbor:"3,keyasint"`

	// Err holds the register access error message, if any.
	Err string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures a hardware FSM transition as observed over
// the register boundary. Autonomous transitions appear here when the
// driver next polls status, not when the hardware took them.
type StateChangeEvent struct {
	// From is the previous state name.
	From string `cbor:"1,keyasint"`

	// To is the new state name.
	To string `cbor:"2,keyasint"`

	// Requested is true when the transition was commanded by software,
	// false when it was autonomous (timer-driven or fault).
	Requested bool `cbor:"3,keyasint"`
}

// ValidationEvent captures a compatibility validation decision.
type ValidationEvent struct {
	// PlatformID and OutputID identify the platform output validated
	// against.
	PlatformID string `cbor:"1,keyasint"`
	OutputID   string `cbor:"2,keyasint"`

	// Mode is the selected signal mode name.
	Mode string `cbor:"3,keyasint"`

	// Passed is the decision.
	Passed bool `cbor:"4,keyasint"`

	// Reason is the violated dimension on failure.
	Reason string `cbor:"5,keyasint,omitempty"`

	// Margin is the numeric violation margin in volts, if any.
	Margin float64 `cbor:"6,keyasint,omitempty"`
}

// FaultEvent captures a latched hardware fault.
type FaultEvent struct {
	// Code is the fault code from the fault register.
	Code uint8 `cbor:"1,keyasint"`

	// Cleared is true when this event records the latch clearing.
	Cleared bool `cbor:"2,keyasint"`
}

// LifecycleEvent captures a driver or session lifecycle step.
type LifecycleEvent struct {
	// Step names the lifecycle step: "initialize", "shutdown",
	// "session_open", "session_close".
	Step string `cbor:"1,keyasint"`

	// Err holds the failure message when the step failed.
	Err string `cbor:"2,keyasint,omitempty"`
}
