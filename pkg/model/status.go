package model

// ProbeStatus is a point-in-time snapshot of a probe's condition as
// read from the hardware status register. Each query returns a fresh
// copy; snapshots are never updated in place.
//
// Fault implies not Ready; no other field combination is structurally
// forbidden.
type ProbeStatus struct {
	// Ready indicates the probe is initialized and accepting commands.
	Ready bool

	// Busy indicates a pulse or cooldown is in progress.
	Busy bool

	// Armed indicates the interlock is armed (ARMED, PULSE_ACTIVE or
	// COOLDOWN).
	Armed bool

	// Fault indicates a hardware fault is latched.
	Fault bool

	// FaultCode identifies the latched fault; zero when Fault is false.
	FaultCode uint8
}

// Equal reports whether two snapshots are identical.
func (s ProbeStatus) Equal(o ProbeStatus) bool {
	return s == o
}
