package probes

import "github.com/sealablab/BPD-001/pkg/driver"

// RegisterAll registers every probe implementation in this package with
// the given registry. Call once during the startup window, before any
// Resolve.
func RegisterAll(r *driver.Registry) error {
	for _, entry := range []struct {
		id   string
		ctor driver.Constructor
	}{
		{EMFIProbeID, NewEMFI},
		{LaserProbeID, NewLaser},
		{RFProbeID, NewRFInject},
		{VGlitchProbeID, NewVGlitch},
	} {
		if err := r.Register(entry.id, entry.ctor); err != nil {
			return err
		}
	}
	return nil
}
