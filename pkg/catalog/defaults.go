package catalog

import "github.com/sealablab/BPD-001/pkg/model"

// Reference platform and output identifiers.
const (
	// PlatformSG1 is the reference FPGA signal generation platform.
	PlatformSG1 = "fpga-sg1"

	// OutputDAC0 is the platform's primary DAC output. Full range is
	// bipolar analog; a restricted TTL sub-mode is also exposed.
	OutputDAC0 = "dac0"

	// OutputTTL1 is a dedicated logic-level output.
	OutputTTL1 = "ttl1"
)

// Default returns the built-in catalog covering the reference platform
// and the probes shipped in pkg/probes. Lab-specific YAML files loaded
// afterwards replace entries with matching identifiers.
func Default() *Catalog {
	c := New()

	c.AddPlatform(Platform{
		ID:      PlatformSG1,
		Name:    "FPGA signal generator, rev 1",
		ClockHz: 100_000_000,
		Outputs: []Output{
			{
				ID:   OutputDAC0,
				Name: "DAC output 0",
				Envelopes: []model.ElectricalEnvelope{
					{VoltageMin: -5.0, VoltageMax: 5.0, Mode: model.SignalModeAnalog},
					{VoltageMin: 0, VoltageMax: 3.3, Mode: model.SignalModeTTL},
				},
			},
			{
				ID:   OutputTTL1,
				Name: "TTL output 1",
				Envelopes: []model.ElectricalEnvelope{
					{VoltageMin: 0, VoltageMax: 3.3, Mode: model.SignalModeTTL},
				},
			},
		},
	})

	c.AddProbe(ProbeSpec{
		ID:   "emfi-hv1",
		Name: "EMFI pulse injector",
		Ports: []Port{
			{
				ID:       "trigger_in",
				Name:     "trigger input",
				Envelope: model.ElectricalEnvelope{VoltageMin: 0, VoltageMax: 3.3, Mode: model.SignalModeTTL},
			},
		},
	})

	c.AddProbe(ProbeSpec{
		ID:   "laser-940",
		Name: "940nm diode laser",
		Ports: []Port{
			{
				ID:       "mod_in",
				Name:     "modulation input",
				Envelope: model.ElectricalEnvelope{VoltageMin: 0, VoltageMax: 5.0, Mode: model.SignalModeAnalog},
			},
		},
	})

	c.AddProbe(ProbeSpec{
		ID:   "rf-inj2",
		Name: "RF injection probe",
		Ports: []Port{
			{
				ID:       "baseband_in",
				Name:     "baseband input",
				Envelope: model.ElectricalEnvelope{VoltageMin: -2.0, VoltageMax: 2.0, Mode: model.SignalModeAnalog},
			},
		},
	})

	c.AddProbe(ProbeSpec{
		ID:   "vglitch-cb1",
		Name: "crowbar voltage glitcher",
		Ports: []Port{
			{
				ID:       "gate_in",
				Name:     "gate drive input",
				Envelope: model.ElectricalEnvelope{VoltageMin: 0, VoltageMax: 3.3, Mode: model.SignalModeTTL},
			},
		},
	})

	return c
}
