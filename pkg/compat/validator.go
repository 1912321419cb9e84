package compat

import (
	"errors"
	"fmt"

	"github.com/sealablab/BPD-001/pkg/model"
)

// ErrIncompatible is the sentinel all validation failures unwrap to.
var ErrIncompatible = errors.New("probe incompatible with platform output")

// Reason identifies which compatibility dimension failed.
type Reason uint8

const (
	// ReasonModeMismatch indicates the selected signal mode is not
	// supported by the output, or does not match the probe's required
	// mode. Mode is checked before voltage.
	ReasonModeMismatch Reason = 1

	// ReasonVoltageTooHigh indicates the probe's maximum drive voltage
	// exceeds what the selected mode can provide.
	ReasonVoltageTooHigh Reason = 2

	// ReasonVoltageTooLow indicates the probe's minimum drive voltage
	// is below what the selected mode can provide.
	ReasonVoltageTooLow Reason = 3
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonModeMismatch:
		return "mode_mismatch"
	case ReasonVoltageTooHigh:
		return "voltage_too_high"
	case ReasonVoltageTooLow:
		return "voltage_too_low"
	default:
		return "unknown"
	}
}

// Incompatibility reports a failed validation: which bound was violated
// and by how much, so the caller can render an actionable message.
type Incompatibility struct {
	// Reason is the violated dimension.
	Reason Reason

	// Margin is the numeric amount by which the bound was exceeded, in
	// volts. Zero for mode mismatches.
	Margin float64

	// Selected is the signal mode the caller asked to validate.
	Selected model.SignalMode

	// Required is the probe's required signal mode.
	Required model.SignalMode
}

// Error implements error.
func (e *Incompatibility) Error() string {
	switch e.Reason {
	case ReasonModeMismatch:
		return fmt.Sprintf("incompatible: mode_mismatch (selected %s, probe requires %s)",
			e.Selected, e.Required)
	case ReasonVoltageTooHigh:
		return fmt.Sprintf("incompatible: voltage_too_high by %.3fV in mode %s",
			e.Margin, e.Selected)
	case ReasonVoltageTooLow:
		return fmt.Sprintf("incompatible: voltage_too_low by %.3fV in mode %s",
			e.Margin, e.Selected)
	default:
		return "incompatible"
	}
}

// Unwrap makes errors.Is(err, ErrIncompatible) hold for all failures.
func (e *Incompatibility) Unwrap() error {
	return ErrIncompatible
}

// Validate checks a probe's declared capabilities against the envelopes
// a platform output provides, for the signal mode the caller selected.
//
// The decision rule, in check order:
//  1. selected must be a mode the output actually provides, and must
//     match the probe's required mode (mode_mismatch);
//  2. the probe's maximum voltage must not exceed the selected mode's
//     achievable maximum (voltage_too_high);
//  3. the probe's minimum voltage must not fall below the selected
//     mode's achievable minimum (voltage_too_low).
//
// On success the returned error is nil. Validate is pure and total for
// well-formed inputs.
func Validate(caps model.ProbeCapabilities, provided []model.ElectricalEnvelope, selected model.SignalMode) error {
	env, ok := findMode(provided, selected)
	if !ok || selected != caps.Mode {
		return &Incompatibility{
			Reason:   ReasonModeMismatch,
			Selected: selected,
			Required: caps.Mode,
		}
	}

	if caps.VoltageMax > env.VoltageMax {
		return &Incompatibility{
			Reason:   ReasonVoltageTooHigh,
			Margin:   caps.VoltageMax - env.VoltageMax,
			Selected: selected,
			Required: caps.Mode,
		}
	}

	if caps.VoltageMin < env.VoltageMin {
		return &Incompatibility{
			Reason:   ReasonVoltageTooLow,
			Margin:   env.VoltageMin - caps.VoltageMin,
			Selected: selected,
			Required: caps.Mode,
		}
	}

	return nil
}

func findMode(provided []model.ElectricalEnvelope, mode model.SignalMode) (model.ElectricalEnvelope, bool) {
	for _, env := range provided {
		if env.Mode == mode {
			return env, true
		}
	}
	return model.ElectricalEnvelope{}, false
}
