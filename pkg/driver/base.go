package driver

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sealablab/BPD-001/pkg/log"
	"github.com/sealablab/BPD-001/pkg/model"
	"github.com/sealablab/BPD-001/pkg/registers"
)

// Base is the shared driver implementation over a registers.Interface.
// Concrete probes embed Base and supply their capability table; the
// interlock sequencing, lifecycle enforcement and single-writer
// discipline live here once.
type Base struct {
	mu sync.RWMutex

	id     string
	caps   model.ProbeCapabilities
	regs   registers.Interface
	logger log.Logger

	initialized bool
	closed      bool

	// lastState is the most recently observed hardware state, used to
	// emit state change events when an autonomous transition is first
	// seen on a status poll.
	lastState uint32
}

// NewBase creates a Base driver for the given probe over the given
// register back end. The capability descriptor is computed once here
// and never mutated.
func NewBase(id string, caps model.ProbeCapabilities, regs registers.Interface, opts Options) *Base {
	return &Base{
		id:     id,
		caps:   caps,
		regs:   regs,
		logger: log.OrNoop(opts.Logger),
	}
}

// ID returns the probe identifier.
func (b *Base) ID() string {
	return b.id
}

// Capabilities returns the probe's declared capability envelope.
func (b *Base) Capabilities() model.ProbeCapabilities {
	return b.caps
}

// Initialize performs the register handshake: the state register must
// be readable and report a known state. Calling Initialize twice
// without Shutdown fails with ErrAlreadyInitialized.
func (b *Base) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrShutdown
	}
	if b.initialized {
		return ErrAlreadyInitialized
	}

	state, err := b.regs.GetRegister(registers.RegState)
	if err != nil {
		b.lifecycleEvent("initialize", err)
		return fmt.Errorf("register handshake: %w", err)
	}
	if state > registers.StateFault {
		err := fmt.Errorf("register handshake: unknown state %d", state)
		b.lifecycleEvent("initialize", err)
		return err
	}

	b.initialized = true
	b.lastState = state
	b.lifecycleEvent("initialize", nil)
	return nil
}

// SetVoltage configures the drive voltage in volts. Configuration is
// only permitted in IDLE.
func (b *Base) SetVoltage(v float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.operationalLocked(); err != nil {
		return err
	}
	if !b.caps.VoltageInRange(v) {
		return fmt.Errorf("voltage %.3fV outside [%.3f, %.3f]: %w",
			v, b.caps.VoltageMin, b.caps.VoltageMax, ErrOutOfRange)
	}
	if err := b.requireStateLocked(registers.StateIdle); err != nil {
		return err
	}

	mv := int32(math.Round(v * 1000))
	return b.setRegisterLocked(registers.RegVoltageMV, registers.EncodeVoltageMV(mv))
}

// SetPulseWidth configures the pulse width in nanoseconds. Configuration
// is only permitted in IDLE.
func (b *Base) SetPulseWidth(ns uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.operationalLocked(); err != nil {
		return err
	}
	if !b.caps.PulseWidthInRange(ns) {
		return fmt.Errorf("pulse width %dns outside [%d, %d]: %w",
			ns, b.caps.PulseWidthMin, b.caps.PulseWidthMax, ErrOutOfRange)
	}
	if err := b.requireStateLocked(registers.StateIdle); err != nil {
		return err
	}

	return b.setRegisterLocked(registers.RegPulseWidthNS, uint32(ns))
}

// Arm writes the arm register, transitioning IDLE to ARMED.
func (b *Base) Arm() error {
	return b.command(registers.CmdArm, registers.StateIdle, registers.StateArmed)
}

// Trigger writes the trigger register, transitioning ARMED to
// PULSE_ACTIVE. It returns as soon as the write completes; the return
// to COOLDOWN and IDLE is autonomous and must be observed via Status.
func (b *Base) Trigger() error {
	return b.command(registers.CmdTrigger, registers.StateArmed, registers.StatePulseActive)
}

// command issues a control write after verifying the required state.
// The hardware independently enforces the same precondition, so a race
// with an autonomous transition surfaces as ErrInvalidState rather
// than an unsafe command.
func (b *Base) command(cmd uint32, required, next uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.operationalLocked(); err != nil {
		return err
	}
	if err := b.requireStateLocked(required); err != nil {
		return err
	}

	if err := b.setRegisterLocked(registers.RegControl, cmd); err != nil {
		// The back end rejected the command: the state moved under us.
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	b.stateChangeEvent(required, next, true)
	b.lastState = next
	return nil
}

// Disarm forces a return to IDLE from ARMED or COOLDOWN, or clears a
// fault latch whose underlying condition is gone.
func (b *Base) Disarm() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.operationalLocked(); err != nil {
		return err
	}

	state, err := b.stateLocked()
	if err != nil {
		return err
	}

	switch state {
	case registers.StateArmed, registers.StateCooldown:
		if err := b.setRegisterLocked(registers.RegControl, registers.CmdDisarm); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		b.stateChangeEvent(state, registers.StateIdle, true)
		b.lastState = registers.StateIdle
		return nil

	case registers.StateFault:
		if err := b.setRegisterLocked(registers.RegControl, registers.CmdDisarm); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		// The latch only clears if the underlying condition is gone;
		// re-read to find out.
		after, err := b.stateLocked()
		if err != nil {
			return err
		}
		if after == registers.StateFault {
			return ErrFaultPersists
		}
		b.faultEvent(0, true)
		b.stateChangeEvent(state, after, true)
		b.lastState = after
		return nil

	default:
		return fmt.Errorf("disarm in %s: %w", registers.StateName(state), ErrInvalidState)
	}
}

// Status returns a fresh snapshot decoded from the status register.
// Safe to call concurrently with other Status calls; serialized against
// state-changing calls.
func (b *Base) Status() (model.ProbeStatus, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return model.ProbeStatus{}, ErrShutdown
	}

	word, err := b.regs.GetRegister(registers.RegStatus)
	if err != nil {
		return model.ProbeStatus{}, err
	}

	return decodeStatus(word), nil
}

// Shutdown releases the driver, forcing a disarm when the hardware is
// armed or cooling down. Safe to call more than once.
func (b *Base) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	if b.initialized {
		state, err := b.stateLocked()
		if err == nil && (state == registers.StateArmed || state == registers.StateCooldown) {
			_ = b.setRegisterLocked(registers.RegControl, registers.CmdDisarm)
		}
	}

	b.closed = true
	b.initialized = false
	b.lifecycleEvent("shutdown", nil)
	return nil
}

// operationalLocked checks lifecycle preconditions shared by all
// state-changing operations.
func (b *Base) operationalLocked() error {
	if b.closed {
		return ErrShutdown
	}
	if !b.initialized {
		return fmt.Errorf("driver not initialized: %w", ErrInvalidState)
	}
	return nil
}

// requireStateLocked reads the hardware state and fails with
// ErrInvalidState unless it matches. Observing a different state than
// last seen emits an autonomous state change event.
func (b *Base) requireStateLocked(required uint32) error {
	state, err := b.stateLocked()
	if err != nil {
		return err
	}
	if state != required {
		return fmt.Errorf("in %s, need %s: %w",
			registers.StateName(state), registers.StateName(required), ErrInvalidState)
	}
	return nil
}

// stateLocked reads the state register, recording autonomous
// transitions observed since the last read.
func (b *Base) stateLocked() (uint32, error) {
	state, err := b.regs.GetRegister(registers.RegState)
	if err != nil {
		return 0, err
	}
	if state != b.lastState {
		b.stateChangeEvent(b.lastState, state, false)
		if state == registers.StateFault {
			if code, cerr := b.regs.GetRegister(registers.RegFaultCode); cerr == nil {
				b.faultEvent(uint8(code), false)
			}
		}
		b.lastState = state
	}
	return state, nil
}

func (b *Base) setRegisterLocked(name string, value uint32) error {
	err := b.regs.SetRegister(name, value)
	ev := log.Event{
		Timestamp: time.Now(),
		ProbeID:   b.id,
		Category:  log.CategoryRegister,
		Register:  &log.RegisterEvent{Name: name, Value: value, Write: true},
	}
	if err != nil {
		ev.Register.Err = err.Error()
	}
	b.logger.Log(ev)
	return err
}

func (b *Base) stateChangeEvent(from, to uint32, requested bool) {
	b.logger.Log(log.Event{
		Timestamp: time.Now(),
		ProbeID:   b.id,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			From:      registers.StateName(from),
			To:        registers.StateName(to),
			Requested: requested,
		},
	})
}

func (b *Base) faultEvent(code uint8, cleared bool) {
	b.logger.Log(log.Event{
		Timestamp: time.Now(),
		ProbeID:   b.id,
		Category:  log.CategoryFault,
		Fault:     &log.FaultEvent{Code: code, Cleared: cleared},
	})
}

func (b *Base) lifecycleEvent(step string, err error) {
	ev := log.Event{
		Timestamp: time.Now(),
		ProbeID:   b.id,
		Category:  log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{Step: step},
	}
	if err != nil {
		ev.Lifecycle.Err = err.Error()
	}
	b.logger.Log(ev)
}

// decodeStatus unpacks a status register word into a snapshot.
func decodeStatus(word uint32) model.ProbeStatus {
	s := model.ProbeStatus{
		Ready: word&registers.StatusBitReady != 0,
		Busy:  word&registers.StatusBitBusy != 0,
		Armed: word&registers.StatusBitArmed != 0,
		Fault: word&registers.StatusBitFault != 0,
	}
	if s.Fault {
		s.FaultCode = uint8((word >> registers.StatusFaultCodeShift) & registers.StatusFaultCodeMask)
	}
	return s
}

// Compile-time interface satisfaction check.
var _ Driver = (*Base)(nil)
