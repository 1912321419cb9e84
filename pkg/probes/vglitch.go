package probes

import (
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// VGlitchProbeID identifies the crowbar voltage glitch probe.
const VGlitchProbeID = "vglitch-cb1"

// vglitchCapabilities is the voltage glitch probe's fixed capability
// table. The MOSFET gate takes a logic-level drive; glitch widths from
// single-digit nanoseconds up.
var vglitchCapabilities = model.ProbeCapabilities{
	VoltageMin:     0,
	VoltageMax:     3.3,
	PulseWidthMin:  8,
	PulseWidthMax:  100_000,
	Mode:           model.SignalModeTTL,
	CooldownCycles: 100_000, // 1 ms at 100 MHz
	ClockHz:        100_000_000,
}

// VGlitch drives a crowbar voltage glitch probe.
type VGlitch struct {
	*driver.Base
}

// NewVGlitch creates a voltage glitch driver over the given register
// back end.
func NewVGlitch(regs registers.Interface, opts driver.Options) (driver.Driver, error) {
	return &VGlitch{
		Base: driver.NewBase(VGlitchProbeID, vglitchCapabilities, regs, opts),
	}, nil
}
