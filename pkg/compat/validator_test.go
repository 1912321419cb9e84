package compat

import (
	"errors"
	"testing"

	"github.com/sealablab/BPD-001/pkg/model"
)

// referenceOutput mirrors the reference platform DAC output: full-range
// analog plus a restricted TTL sub-mode.
var referenceOutput = []model.ElectricalEnvelope{
	{VoltageMin: -5, VoltageMax: 5, Mode: model.SignalModeAnalog},
	{VoltageMin: 0, VoltageMax: 3.3, Mode: model.SignalModeTTL},
}

var ttlProbe = model.ProbeCapabilities{
	VoltageMin: 0,
	VoltageMax: 3.3,
	Mode:       model.SignalModeTTL,
}

func TestValidateTTLProbeOnTTLSubMode(t *testing.T) {
	// Probe {0..3.3V TTL} on an output offering TTL 0..3.3V: safe.
	if err := Validate(ttlProbe, referenceOutput, model.SignalModeTTL); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateModeMismatchCheckedFirst(t *testing.T) {
	// Same probe, same output, selecting ANALOG: the analog range also
	// exceeds the probe's 3.3V bound, but mode is checked first and
	// must be the reported violation.
	err := Validate(ttlProbe, referenceOutput, model.SignalModeAnalog)
	if err == nil {
		t.Fatal("Validate() = nil, want mode_mismatch")
	}

	var inc *Incompatibility
	if !errors.As(err, &inc) {
		t.Fatalf("error %T is not *Incompatibility", err)
	}
	if inc.Reason != ReasonModeMismatch {
		t.Errorf("Reason = %v, want mode_mismatch", inc.Reason)
	}
	if !errors.Is(err, ErrIncompatible) {
		t.Error("errors.Is(err, ErrIncompatible) = false")
	}
}

func TestValidateVoltageBounds(t *testing.T) {
	tests := []struct {
		name       string
		caps       model.ProbeCapabilities
		selected   model.SignalMode
		wantReason Reason
		wantMargin float64
	}{
		{
			name: "TooHigh",
			caps: model.ProbeCapabilities{
				VoltageMin: 0, VoltageMax: 6.5, Mode: model.SignalModeAnalog,
			},
			selected:   model.SignalModeAnalog,
			wantReason: ReasonVoltageTooHigh,
			wantMargin: 1.5,
		},
		{
			name: "TooLow",
			caps: model.ProbeCapabilities{
				VoltageMin: -7, VoltageMax: 2, Mode: model.SignalModeAnalog,
			},
			selected:   model.SignalModeAnalog,
			wantReason: ReasonVoltageTooLow,
			wantMargin: 2,
		},
		{
			name: "UnsupportedMode",
			caps: model.ProbeCapabilities{
				VoltageMin: 0, VoltageMax: 1, Mode: model.SignalModeUnknown,
			},
			selected:   model.SignalModeUnknown,
			wantReason: ReasonModeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.caps, referenceOutput, tt.selected)
			var inc *Incompatibility
			if !errors.As(err, &inc) {
				t.Fatalf("Validate() = %v, want *Incompatibility", err)
			}
			if inc.Reason != tt.wantReason {
				t.Errorf("Reason = %v, want %v", inc.Reason, tt.wantReason)
			}
			if tt.wantMargin != 0 && !closeTo(inc.Margin, tt.wantMargin) {
				t.Errorf("Margin = %v, want %v", inc.Margin, tt.wantMargin)
			}
		})
	}
}

func TestValidateFailureSymmetry(t *testing.T) {
	// Swapping which bound is violated changes only the reported
	// reason, never the pass/fail outcome for a fixed pair.
	high := model.ProbeCapabilities{VoltageMin: 0, VoltageMax: 6, Mode: model.SignalModeAnalog}
	low := model.ProbeCapabilities{VoltageMin: -6, VoltageMax: 0, Mode: model.SignalModeAnalog}

	errHigh := Validate(high, referenceOutput, model.SignalModeAnalog)
	errLow := Validate(low, referenceOutput, model.SignalModeAnalog)

	if (errHigh == nil) != (errLow == nil) {
		t.Fatalf("asymmetric outcomes: high=%v low=%v", errHigh, errLow)
	}

	var incHigh, incLow *Incompatibility
	if !errors.As(errHigh, &incHigh) || !errors.As(errLow, &incLow) {
		t.Fatal("expected Incompatibility from both")
	}
	if incHigh.Reason != ReasonVoltageTooHigh {
		t.Errorf("high Reason = %v, want voltage_too_high", incHigh.Reason)
	}
	if incLow.Reason != ReasonVoltageTooLow {
		t.Errorf("low Reason = %v, want voltage_too_low", incLow.Reason)
	}
	if !closeTo(incHigh.Margin, incLow.Margin) {
		t.Errorf("margins differ: high=%v low=%v", incHigh.Margin, incLow.Margin)
	}
}

func TestValidateExactBoundsPass(t *testing.T) {
	caps := model.ProbeCapabilities{VoltageMin: -5, VoltageMax: 5, Mode: model.SignalModeAnalog}
	if err := Validate(caps, referenceOutput, model.SignalModeAnalog); err != nil {
		t.Errorf("Validate() at exact bounds = %v, want nil", err)
	}
}

func TestReasonString(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonModeMismatch, "mode_mismatch"},
		{ReasonVoltageTooHigh, "voltage_too_high"},
		{ReasonVoltageTooLow, "voltage_too_low"},
		{Reason(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
