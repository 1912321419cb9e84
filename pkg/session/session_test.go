package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sealablab/BPD-001/pkg/catalog"
	"github.com/sealablab/BPD-001/pkg/compat"
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/persistence"
	"github.com/sealablab/BPD-001/pkg/probes"
	"github.com/sealablab/BPD-001/pkg/registers"
	"github.com/sealablab/BPD-001/pkg/sim"
)

// countingBackend wraps a register back end and counts every access,
// so tests can assert that a blocked connection never touched it.
type countingBackend struct {
	inner  registers.Interface
	writes int
	reads  int
}

func (c *countingBackend) SetRegister(name string, value uint32) error {
	c.writes++
	return c.inner.SetRegister(name, value)
}

func (c *countingBackend) GetRegister(name string) (uint32, error) {
	c.reads++
	return c.inner.GetRegister(name)
}

func newTestRegistry(t *testing.T) *driver.Registry {
	t.Helper()
	r := driver.NewRegistry()
	require.NoError(t, probes.RegisterAll(r))
	return r
}

// fastSim returns a simulator whose cooldown completes in about 10µs,
// so waits finish promptly.
func fastSim() *sim.Simulator {
	return sim.New(sim.Config{CooldownCycles: 1000})
}

func baseConfig(t *testing.T, backend registers.Interface) Config {
	t.Helper()
	return Config{
		ProbeID:    probes.EMFIProbeID,
		PlatformID: catalog.PlatformSG1,
		OutputID:   catalog.OutputTTL1,
		Registry:   newTestRegistry(t),
		Catalog:    catalog.Default(),
		Backend:    backend,
	}
}

func TestOpenCompatiblePairing(t *testing.T) {
	s, err := Open(baseConfig(t, fastSim()))
	require.NoError(t, err)
	defer s.Close()

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, model.SignalModeTTL, s.Capabilities().Mode)
	assert.Equal(t, catalog.OutputTTL1, s.Output().ID)

	status, err := s.Status()
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.False(t, status.Armed)
}

func TestOpenBlockedBeforeAnyRegisterWrite(t *testing.T) {
	backend := &countingBackend{inner: fastSim()}

	// The laser requires ANALOG; the TTL-only output cannot provide it.
	cfg := baseConfig(t, backend)
	cfg.ProbeID = probes.LaserProbeID

	s, err := Open(cfg)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, compat.ErrIncompatible)

	var inc *compat.Incompatibility
	require.ErrorAs(t, err, &inc)
	assert.Equal(t, compat.ReasonModeMismatch, inc.Reason)

	// Validation rejected the pairing before the driver initialized, so
	// the hardware was never touched.
	assert.Zero(t, backend.writes)
	assert.Zero(t, backend.reads)
}

func TestOpenUnknownIdentifiers(t *testing.T) {
	cfg := baseConfig(t, fastSim())
	cfg.ProbeID = "no-such-probe"
	_, err := Open(cfg)
	assert.ErrorIs(t, err, driver.ErrUnknownID)

	cfg = baseConfig(t, fastSim())
	cfg.PlatformID = "no-such-platform"
	_, err = Open(cfg)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	cfg = baseConfig(t, fastSim())
	cfg.OutputID = "no-such-output"
	_, err = Open(cfg)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestFullPulseCycle(t *testing.T) {
	s, err := Open(baseConfig(t, fastSim()))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetVoltage(3.3))
	require.NoError(t, s.Arm())
	require.NoError(t, s.Trigger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.WaitForIdle(ctx))

	status, err := s.Status()
	require.NoError(t, err)
	assert.True(t, status.Ready)
	assert.False(t, status.Armed)
	assert.False(t, status.Busy)

	state := s.State()
	assert.Equal(t, uint64(1), state.TotalPulses)
	assert.Equal(t, 3.3, state.LastVoltage)
}

func TestConfigRejectedOutsideEnvelope(t *testing.T) {
	s, err := Open(baseConfig(t, fastSim()))
	require.NoError(t, err)
	defer s.Close()

	err = s.SetVoltage(5.0)
	assert.ErrorIs(t, err, driver.ErrOutOfRange)

	// A rejected configuration does not land in the history.
	assert.Zero(t, s.State().LastVoltage)
}

func TestFaultRecordedOnce(t *testing.T) {
	backend := fastSim()
	s, err := Open(baseConfig(t, backend))
	require.NoError(t, err)
	defer s.Close()

	backend.InjectFault(7)

	for i := 0; i < 3; i++ {
		status, err := s.Status()
		require.NoError(t, err)
		assert.True(t, status.Fault)
		assert.Equal(t, uint8(7), status.FaultCode)
	}

	state := s.State()
	assert.Equal(t, uint64(1), state.TotalFaults)
	require.Len(t, state.FaultHistory, 1)
	assert.Equal(t, uint8(7), state.FaultHistory[0].Code)
	assert.Equal(t, s.ID(), state.FaultHistory[0].SessionID)

	// Clearing the latch and faulting again records a second entry.
	backend.ClearFaultCondition()
	require.NoError(t, s.Disarm())
	backend.InjectFault(9)
	_, err = s.Status()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.State().TotalFaults)
}

func TestWaitForIdleReportsFault(t *testing.T) {
	backend := fastSim()
	s, err := Open(baseConfig(t, backend))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Arm())
	require.NoError(t, s.Trigger())
	backend.InjectFault(4)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = s.WaitForIdle(ctx)
	assert.ErrorIs(t, err, driver.ErrFaulted)

	// The wait polls through Status, so the fault is in the history.
	assert.Equal(t, uint64(1), s.State().TotalFaults)
}

func TestStatePersistedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emfi-hv1.json")
	store := persistence.NewProbeStateStore(path)

	cfg := baseConfig(t, fastSim())
	cfg.StateStore = store

	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.SetVoltage(2.5))
	require.NoError(t, s.Arm())
	require.NoError(t, s.Trigger())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.WaitForIdle(ctx))
	require.NoError(t, s.Close())

	// A new session over the same store resumes the history.
	cfg = baseConfig(t, fastSim())
	cfg.StateStore = store
	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()

	state := s2.State()
	assert.Equal(t, uint64(1), state.TotalPulses)
	assert.Equal(t, 2.5, state.LastVoltage)
}

func TestCloseIdempotent(t *testing.T) {
	s, err := Open(baseConfig(t, fastSim()))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Arm(), ErrClosed)
	_, err = s.Status()
	assert.ErrorIs(t, err, ErrClosed)
}
