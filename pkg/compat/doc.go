// Package compat implements the cross-domain voltage and signal-mode
// compatibility validator.
//
// Validate compares a probe's declared input envelope against a target
// platform output's declared envelopes for the signal mode the operator
// actually selected, and decides SAFE or UNSAFE before any physical
// connection is exercised. A platform output capable of +/-5V raw DAC
// output may also expose a restricted 0-3.3V TTL sub-mode; validation is
// always against the selected sub-mode, not the output's maximum range,
// because selecting the wrong sub-mode is the classic unsafe-wiring
// mistake this framework exists to prevent.
//
// Validation is pure and stateless: it never touches hardware, is safe
// to call before any device exists, and may be called from any number
// of concurrent callers.
package compat
