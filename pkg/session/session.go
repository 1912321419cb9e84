package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sealablab/BPD-001/pkg/catalog"
	"github.com/sealablab/BPD-001/pkg/compat"
	"github.com/sealablab/BPD-001/pkg/driver"
	"github.com/sealablab/BPD-001/pkg/log"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/persistence"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// Session errors.
var (
	ErrClosed = errors.New("session is closed")
)

// Config selects what a session connects: which probe, against which
// platform output, in which signal mode.
type Config struct {
	// ProbeID selects the driver from the registry.
	ProbeID string

	// PlatformID and OutputID select the platform output specification
	// to validate against.
	PlatformID string
	OutputID   string

	// Mode is the selected signal mode. When unset it defaults to the
	// probe's required mode; set it explicitly when exercising a
	// sub-mode of a multi-mode output.
	Mode model.SignalMode

	// Registry resolves probe drivers. Required.
	Registry *driver.Registry

	// Catalog supplies the platform specifications. Required.
	Catalog *catalog.Catalog

	// Backend is the register back end the driver runs against
	// (pkg/sim or real register I/O). Required.
	Backend registers.Interface

	// Logger receives control events. Nil disables logging.
	Logger log.Logger

	// StateStore persists operational history. Nil disables
	// persistence.
	StateStore *persistence.ProbeStateStore
}

// Session owns one validated, initialized driver for the lifetime of a
// probe connection.
type Session struct {
	mu sync.Mutex

	id     string
	cfg    Config
	drv    driver.Driver
	output catalog.Output
	logger log.Logger

	state         *persistence.ProbeState
	faultRecorded bool
	closed        bool
}

// Open resolves, validates and initializes a probe connection.
//
// Validation happens before Initialize: an incompatible voltage or
// mode pairing is rejected while the driver has not yet performed a
// single register write. The returned error unwraps to
// compat.ErrIncompatible in that case.
func Open(cfg Config) (*Session, error) {
	if cfg.Registry == nil || cfg.Catalog == nil || cfg.Backend == nil {
		return nil, errors.New("session config requires Registry, Catalog and Backend")
	}
	logger := log.OrNoop(cfg.Logger)

	platform, err := cfg.Catalog.PlatformByID(cfg.PlatformID)
	if err != nil {
		return nil, err
	}
	output, err := platform.OutputByID(cfg.OutputID)
	if err != nil {
		return nil, err
	}

	drv, err := cfg.Registry.Resolve(cfg.ProbeID, cfg.Backend, driver.Options{Logger: logger})
	if err != nil {
		return nil, err
	}

	caps := drv.Capabilities()
	mode := cfg.Mode
	if mode == model.SignalModeUnknown {
		mode = caps.Mode
	}

	id := uuid.NewString()
	verr := compat.Validate(caps, output.Envelopes, mode)
	logValidation(logger, id, cfg, mode, verr)
	if verr != nil {
		return nil, fmt.Errorf("connection blocked: %w", verr)
	}

	if err := drv.Initialize(); err != nil {
		return nil, err
	}

	s := &Session{
		id:     id,
		cfg:    cfg,
		drv:    drv,
		output: output,
		logger: logger,
	}
	if err := s.loadState(); err != nil {
		_ = drv.Shutdown()
		return nil, err
	}

	logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: id,
		ProbeID:   cfg.ProbeID,
		Category:  log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{Step: "session_open"},
	})
	return s, nil
}

func logValidation(logger log.Logger, sessionID string, cfg Config, mode model.SignalMode, verr error) {
	ev := log.Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		ProbeID:   cfg.ProbeID,
		Category:  log.CategoryValidation,
		Validation: &log.ValidationEvent{
			PlatformID: cfg.PlatformID,
			OutputID:   cfg.OutputID,
			Mode:       mode.String(),
			Passed:     verr == nil,
		},
	}
	var inc *compat.Incompatibility
	if errors.As(verr, &inc) {
		ev.Validation.Reason = inc.Reason.String()
		ev.Validation.Margin = inc.Margin
	}
	logger.Log(ev)
}

func (s *Session) loadState() error {
	if s.cfg.StateStore == nil {
		s.state = &persistence.ProbeState{ProbeID: s.cfg.ProbeID}
		return nil
	}
	state, err := s.cfg.StateStore.Load()
	if err != nil {
		return fmt.Errorf("load probe state: %w", err)
	}
	if state == nil {
		state = &persistence.ProbeState{ProbeID: s.cfg.ProbeID}
	}
	s.state = state
	return nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Capabilities returns the connected probe's capability envelope.
func (s *Session) Capabilities() model.ProbeCapabilities {
	return s.drv.Capabilities()
}

// Output returns the platform output the session was validated against.
func (s *Session) Output() catalog.Output {
	return s.output
}

// SetVoltage configures the drive voltage, recording it in the
// operational history on success.
func (s *Session) SetVoltage(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.drv.SetVoltage(v); err != nil {
		return err
	}
	s.state.LastVoltage = v
	return nil
}

// SetPulseWidth configures the pulse width, recording it in the
// operational history on success.
func (s *Session) SetPulseWidth(ns uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.drv.SetPulseWidth(ns); err != nil {
		return err
	}
	s.state.LastPulseWidthNS = ns
	return nil
}

// Arm arms the interlock.
func (s *Session) Arm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.drv.Arm()
}

// Trigger fires the pulse and counts it in the operational history.
func (s *Session) Trigger() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.drv.Trigger(); err != nil {
		return err
	}
	s.state.TotalPulses++
	return nil
}

// Disarm returns the hardware to IDLE, or clears a fault latch whose
// condition is gone.
func (s *Session) Disarm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	err := s.drv.Disarm()
	if err == nil {
		s.faultRecorded = false
	}
	return err
}

// Status returns a fresh status snapshot, recording newly observed
// faults in the operational history.
func (s *Session) Status() (model.ProbeStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.ProbeStatus{}, ErrClosed
	}
	status, err := s.drv.Status()
	if err != nil {
		return model.ProbeStatus{}, err
	}
	if status.Fault && !s.faultRecorded {
		s.faultRecorded = true
		s.state.RecordFault(persistence.FaultRecord{
			Code:      status.FaultCode,
			At:        time.Now(),
			SessionID: s.id,
		})
	}
	return status, nil
}

// WaitForIdle waits for the autonomous return to IDLE after a trigger.
// Cancellation stops only the wait, never the hardware's own timing.
func (s *Session) WaitForIdle(ctx context.Context) error {
	// The wait polls through Session.Status so newly observed faults
	// land in the operational history; s.mu is taken per poll, not for
	// the whole wait, so a concurrent Disarm is never blocked.
	return driver.WaitForIdle(ctx, s, 0)
}

// State returns a copy of the current operational history.
func (s *Session) State() persistence.ProbeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state
}

// Close shuts the driver down (forcing a disarm when needed) and
// persists the operational history. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.drv.Shutdown()

	if s.cfg.StateStore != nil {
		s.state.SavedAt = time.Now()
		if serr := s.cfg.StateStore.Save(s.state); serr != nil && err == nil {
			err = serr
		}
	}

	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		ProbeID:   s.cfg.ProbeID,
		Category:  log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{Step: "session_close"},
	})
	return err
}
