package probes

import (
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// EMFIProbeID identifies the electromagnetic fault injection probe.
const EMFIProbeID = "emfi-hv1"

// emfiCapabilities is the EMFI probe's fixed capability table. The
// discharge circuit produces a single fixed pulse width; the trigger
// input is logic-level.
var emfiCapabilities = model.ProbeCapabilities{
	VoltageMin:     0,
	VoltageMax:     3.3,
	PulseWidthMin:  20,
	PulseWidthMax:  20,
	Mode:           model.SignalModeTTL,
	CooldownCycles: 5_000_000, // 50 ms at 100 MHz: coil recharge time
	ClockHz:        100_000_000,
}

// EMFI drives an electromagnetic fault injection probe.
type EMFI struct {
	*driver.Base
}

// NewEMFI creates an EMFI driver over the given register back end.
func NewEMFI(regs registers.Interface, opts driver.Options) (driver.Driver, error) {
	return &EMFI{
		Base: driver.NewBase(EMFIProbeID, emfiCapabilities, regs, opts),
	}, nil
}
