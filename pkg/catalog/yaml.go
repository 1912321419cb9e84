package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sealablab/BPD-001/pkg/model"
)

// yamlCatalog is the YAML document structure of a specification file.
type yamlCatalog struct {
	Platforms []yamlPlatform `yaml:"platforms"`
	Probes    []yamlProbe    `yaml:"probes"`
}

type yamlPlatform struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	ClockHz uint32       `yaml:"clock_hz"`
	Outputs []yamlOutput `yaml:"outputs"`
}

type yamlOutput struct {
	ID    string         `yaml:"id"`
	Name  string         `yaml:"name"`
	Modes []yamlEnvelope `yaml:"modes"`
}

type yamlProbe struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Ports []yamlPort `yaml:"ports"`
}

type yamlPort struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	Mode       string  `yaml:"mode"`
	VoltageMin float64 `yaml:"voltage_min"`
	VoltageMax float64 `yaml:"voltage_max"`
}

type yamlEnvelope struct {
	Mode       string  `yaml:"mode"`
	VoltageMin float64 `yaml:"voltage_min"`
	VoltageMax float64 `yaml:"voltage_max"`
}

// LoadFile loads one specification YAML file into the catalog,
// replacing any entries with the same identifiers.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}

	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for _, yp := range doc.Platforms {
		p, err := yp.toPlatform()
		if err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}
		c.AddPlatform(p)
	}
	for _, yp := range doc.Probes {
		p, err := yp.toProbe()
		if err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}
		c.AddProbe(p)
	}
	return nil
}

// LoadDir loads every .yaml/.yml file in dir. A missing directory is
// not an error; it just means no local specifications are present.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read catalog directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := c.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (yp yamlPlatform) toPlatform() (Platform, error) {
	if yp.ID == "" {
		return Platform{}, fmt.Errorf("platform missing id")
	}
	p := Platform{
		ID:      yp.ID,
		Name:    yp.Name,
		ClockHz: yp.ClockHz,
	}
	for _, yo := range yp.Outputs {
		if yo.ID == "" {
			return Platform{}, fmt.Errorf("platform %q: output missing id", yp.ID)
		}
		out := Output{ID: yo.ID, Name: yo.Name}
		for _, ye := range yo.Modes {
			env, err := ye.toEnvelope()
			if err != nil {
				return Platform{}, fmt.Errorf("platform %q output %q: %w", yp.ID, yo.ID, err)
			}
			out.Envelopes = append(out.Envelopes, env)
		}
		p.Outputs = append(p.Outputs, out)
	}
	return p, nil
}

func (yp yamlProbe) toProbe() (ProbeSpec, error) {
	if yp.ID == "" {
		return ProbeSpec{}, fmt.Errorf("probe missing id")
	}
	p := ProbeSpec{ID: yp.ID, Name: yp.Name}
	for _, ypo := range yp.Ports {
		if ypo.ID == "" {
			return ProbeSpec{}, fmt.Errorf("probe %q: port missing id", yp.ID)
		}
		env, err := yamlEnvelope{
			Mode:       ypo.Mode,
			VoltageMin: ypo.VoltageMin,
			VoltageMax: ypo.VoltageMax,
		}.toEnvelope()
		if err != nil {
			return ProbeSpec{}, fmt.Errorf("probe %q port %q: %w", yp.ID, ypo.ID, err)
		}
		p.Ports = append(p.Ports, Port{ID: ypo.ID, Name: ypo.Name, Envelope: env})
	}
	return p, nil
}

func (ye yamlEnvelope) toEnvelope() (model.ElectricalEnvelope, error) {
	mode := model.ParseSignalMode(ye.Mode)
	if mode == model.SignalModeUnknown {
		return model.ElectricalEnvelope{}, fmt.Errorf("unknown signal mode %q", ye.Mode)
	}
	if ye.VoltageMin > ye.VoltageMax {
		return model.ElectricalEnvelope{}, fmt.Errorf("voltage_min %.3f above voltage_max %.3f",
			ye.VoltageMin, ye.VoltageMax)
	}
	return model.ElectricalEnvelope{
		VoltageMin: ye.VoltageMin,
		VoltageMax: ye.VoltageMax,
		Mode:       mode,
	}, nil
}
