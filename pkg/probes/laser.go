package probes

import (
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// LaserProbeID identifies the near-infrared laser fault injection probe.
const LaserProbeID = "laser-940"

// laserCapabilities is the laser probe's fixed capability table. The
// diode current driver takes an analog modulation input; pulse width is
// programmable over a wide range.
var laserCapabilities = model.ProbeCapabilities{
	VoltageMin:     0,
	VoltageMax:     5.0,
	PulseWidthMin:  20,
	PulseWidthMax:  1_000_000,
	Mode:           model.SignalModeAnalog,
	CooldownCycles: 1_000_000, // 10 ms at 100 MHz: diode thermal recovery
	ClockHz:        100_000_000,
}

// Laser drives a diode laser fault injection probe.
type Laser struct {
	*driver.Base
}

// NewLaser creates a laser driver over the given register back end.
func NewLaser(regs registers.Interface, opts driver.Options) (driver.Driver, error) {
	return &Laser{
		Base: driver.NewBase(LaserProbeID, laserCapabilities, regs, opts),
	}, nil
}
