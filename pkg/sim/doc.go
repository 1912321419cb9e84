// Package sim provides an in-memory simulated back end for the probe
// hardware state machine.
//
// The simulator implements the registers.Interface contract over a
// simulated register file, so drivers run against it unchanged. It owns
// the authoritative arm/trigger/cooldown/fault state machine: the
// PULSE_ACTIVE to COOLDOWN and COOLDOWN to IDLE transitions are driven
// by internal timers, exactly as real hardware drives them from its
// clock, and are observable to software only through status reads.
// Trigger and arm commands are rejected at the register level when the
// state machine is not in the required state; a pulse can never be
// produced without an explicit arm step, no matter what software does.
//
// Fault injection is available for tests and operator drills: a fault
// preempts any in-flight or pending transition, and the latch clears
// only when a disarm is commanded after the underlying condition is
// gone.
package sim
