package probes

import (
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// RFProbeID identifies the RF injection probe.
const RFProbeID = "rf-inj2"

// rfCapabilities is the RF probe's fixed capability table. The mixer
// baseband input is bipolar analog; long bursts are supported but the
// amplifier needs little recovery time.
var rfCapabilities = model.ProbeCapabilities{
	VoltageMin:     -2.0,
	VoltageMax:     2.0,
	PulseWidthMin:  100,
	PulseWidthMax:  500_000,
	Mode:           model.SignalModeAnalog,
	CooldownCycles: 200_000, // 2 ms at 100 MHz
	ClockHz:        100_000_000,
}

// RFInject drives an RF fault injection probe.
type RFInject struct {
	*driver.Base
}

// NewRFInject creates an RF injection driver over the given register
// back end.
func NewRFInject(regs registers.Interface, opts driver.Options) (driver.Driver, error) {
	return &RFInject{
		Base: driver.NewBase(RFProbeID, rfCapabilities, regs, opts),
	}, nil
}
