// Package probes contains the concrete probe driver implementations.
//
// Each probe family (EMFI, laser, RF, voltage glitch) is a thin wrapper
// over driver.Base carrying its fixed capability table: the interlock
// sequencing is identical across probes, only the electrical and timing
// envelope differs. RegisterAll populates a driver.Registry with every
// probe in this package; the composition root decides which registry
// instance to populate.
//
// Capability tables mirror the probe data sheets in the specification
// catalogs (pkg/catalog); the catalog entry describes the probe's input
// port for validation, the capability table here additionally fixes the
// timing constants (pulse width limits, cooldown cycles).
package probes
