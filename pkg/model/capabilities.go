package model

import "time"

// ProbeCapabilities declares the electrical and timing envelope a probe
// driver supports. It is derived at driver construction from the probe's
// input envelope plus fixed timing constants and never mutated afterward;
// configuration calls are checked against it but do not shift it.
type ProbeCapabilities struct {
	// VoltageMin is the minimum drive voltage in volts.
	VoltageMin float64

	// VoltageMax is the maximum drive voltage in volts.
	VoltageMax float64

	// PulseWidthMin is the minimum pulse width in nanoseconds.
	PulseWidthMin uint64

	// PulseWidthMax is the maximum pulse width in nanoseconds.
	// Probes with a single fixed pulse width have PulseWidthMin ==
	// PulseWidthMax.
	PulseWidthMax uint64

	// Mode is the signal mode the probe's trigger input requires.
	Mode SignalMode

	// CooldownCycles is the minimum cooldown duration after a pulse,
	// in hardware clock cycles at ClockHz.
	CooldownCycles uint32

	// ClockHz is the hardware clock frequency the cooldown is counted
	// at. Exposed so callers can compute real-world wait times without
	// hardware access.
	ClockHz uint32
}

// VoltageInRange reports whether v is within the declared drive range.
func (c ProbeCapabilities) VoltageInRange(v float64) bool {
	return v >= c.VoltageMin && v <= c.VoltageMax
}

// PulseWidthInRange reports whether ns is within the declared pulse
// width range.
func (c ProbeCapabilities) PulseWidthInRange(ns uint64) bool {
	return ns >= c.PulseWidthMin && ns <= c.PulseWidthMax
}

// FixedPulseWidth reports whether the probe supports only a single
// pulse width.
func (c ProbeCapabilities) FixedPulseWidth() bool {
	return c.PulseWidthMin == c.PulseWidthMax
}

// CooldownDuration returns the minimum cooldown as wall-clock time.
func (c ProbeCapabilities) CooldownDuration() time.Duration {
	if c.ClockHz == 0 {
		return 0
	}
	cycles := time.Duration(c.CooldownCycles)
	return cycles * time.Second / time.Duration(c.ClockHz)
}

// Envelope returns the probe's required input envelope, for use with
// the compatibility validator.
func (c ProbeCapabilities) Envelope() ElectricalEnvelope {
	return ElectricalEnvelope{
		VoltageMin: c.VoltageMin,
		VoltageMax: c.VoltageMax,
		Mode:       c.Mode,
	}
}
