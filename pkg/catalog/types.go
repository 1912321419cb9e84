package catalog

import (
	"errors"
	"fmt"

	"github.com/sealablab/BPD-001/pkg/model"
)

// ErrNotFound is returned by accessor queries for unknown identifiers.
var ErrNotFound = errors.New("catalog entry not found")

// Output describes one platform output port and the signal modes it
// provides. A single physical output may expose several sub-modes with
// different envelopes (e.g. a +/-5V DAC output with a restricted
// 0-3.3V TTL sub-mode).
type Output struct {
	// ID is the output port identifier, unique within its platform.
	ID string

	// Name is a human-readable label.
	Name string

	// Envelopes lists the envelope provided in each supported mode.
	Envelopes []model.ElectricalEnvelope
}

// ModeEnvelope returns the envelope for the given signal mode.
func (o Output) ModeEnvelope(mode model.SignalMode) (model.ElectricalEnvelope, bool) {
	for _, env := range o.Envelopes {
		if env.Mode == mode {
			return env, true
		}
	}
	return model.ElectricalEnvelope{}, false
}

// Platform describes a signal generation platform: its clock and its
// output ports.
type Platform struct {
	// ID is the platform identifier.
	ID string

	// Name is a human-readable label.
	Name string

	// ClockHz is the platform's signal generation clock frequency.
	ClockHz uint32

	// Outputs are the platform's output ports.
	Outputs []Output
}

// OutputByID returns the output port with the given identifier.
func (p *Platform) OutputByID(id string) (Output, error) {
	for _, out := range p.Outputs {
		if out.ID == id {
			return out, nil
		}
	}
	return Output{}, fmt.Errorf("platform %q output %q: %w", p.ID, id, ErrNotFound)
}

// Port describes one probe input port and its required envelope.
type Port struct {
	// ID is the port identifier, unique within its probe.
	ID string

	// Name is a human-readable label.
	Name string

	// Envelope is the electrical envelope the port requires.
	Envelope model.ElectricalEnvelope
}

// ProbeSpec describes a probe's input ports as authored by its data
// sheet.
type ProbeSpec struct {
	// ID is the probe identifier, matching the driver registry key.
	ID string

	// Name is a human-readable label.
	Name string

	// Ports are the probe's input ports.
	Ports []Port
}

// PortByID returns the input port with the given identifier.
func (p *ProbeSpec) PortByID(id string) (Port, error) {
	for _, port := range p.Ports {
		if port.ID == id {
			return port, nil
		}
	}
	return Port{}, fmt.Errorf("probe %q port %q: %w", p.ID, id, ErrNotFound)
}
