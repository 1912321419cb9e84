package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/sealablab/BPD-001/pkg/registers"
)

// Simulator errors.
var (
	// ErrCommandRejected indicates a control command was written while
	// the state machine was not in a state that permits it. The state
	// machine is unchanged.
	ErrCommandRejected = errors.New("control command rejected in current state")
)

// Default timing parameters.
const (
	// DefaultClockHz is the simulated hardware clock frequency (100 MHz).
	DefaultClockHz uint32 = 100_000_000

	// DefaultCooldownCycles is the default minimum cooldown in clock
	// cycles (10 ms at DefaultClockHz).
	DefaultCooldownCycles uint32 = 1_000_000
)

// Config holds simulator construction parameters.
type Config struct {
	// ClockHz is the simulated hardware clock frequency. Zero selects
	// DefaultClockHz.
	ClockHz uint32

	// CooldownCycles is the minimum cooldown after a pulse in clock
	// cycles. Zero selects DefaultCooldownCycles.
	CooldownCycles uint32

	// TimeScale stretches simulated durations by the given factor so
	// nanosecond-scale pulses become observable in tests. Zero or one
	// means real time.
	TimeScale float64
}

// Simulator is an in-memory register file plus the hardware state
// machine it fronts. It implements registers.Interface.
//
// All register access is serialized internally; the autonomous timer
// transitions take the same lock as register writes, so observers see
// consistent state/status pairs.
type Simulator struct {
	mu sync.Mutex

	clockHz        uint32
	cooldownCycles uint32
	scale          float64

	state       uint32
	voltageMV   int32
	pulseWidth  uint32
	faultCode   uint8
	faultActive bool

	pulseTimer    *time.Timer
	cooldownTimer *time.Timer

	// generation invalidates stale timer callbacks after a fault or
	// early disarm.
	generation uint64
}

// New creates a simulator in IDLE with all registers zeroed.
func New(cfg Config) *Simulator {
	s := &Simulator{
		clockHz:        cfg.ClockHz,
		cooldownCycles: cfg.CooldownCycles,
		scale:          cfg.TimeScale,
	}
	if s.clockHz == 0 {
		s.clockHz = DefaultClockHz
	}
	if s.cooldownCycles == 0 {
		s.cooldownCycles = DefaultCooldownCycles
	}
	if s.scale <= 0 {
		s.scale = 1
	}
	return s
}

// CooldownCycles returns the configured minimum cooldown in clock cycles.
func (s *Simulator) CooldownCycles() uint32 {
	return s.cooldownCycles
}

// ClockHz returns the simulated hardware clock frequency.
func (s *Simulator) ClockHz() uint32 {
	return s.clockHz
}

// SetRegister implements registers.Interface.
func (s *Simulator) SetRegister(name string, value uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case registers.RegVoltageMV:
		s.voltageMV = registers.DecodeVoltageMV(value)
		return nil
	case registers.RegPulseWidthNS:
		s.pulseWidth = value
		return nil
	case registers.RegControl:
		return s.controlLocked(value)
	case registers.RegState, registers.RegStatus, registers.RegFaultCode:
		return registers.ErrReadOnly
	default:
		return registers.ErrUnknownRegister
	}
}

// GetRegister implements registers.Interface.
func (s *Simulator) GetRegister(name string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case registers.RegVoltageMV:
		return registers.EncodeVoltageMV(s.voltageMV), nil
	case registers.RegPulseWidthNS:
		return s.pulseWidth, nil
	case registers.RegControl:
		return 0, nil
	case registers.RegState:
		return s.state, nil
	case registers.RegStatus:
		return s.statusLocked(), nil
	case registers.RegFaultCode:
		return uint32(s.faultCode), nil
	default:
		return 0, registers.ErrUnknownRegister
	}
}

// controlLocked applies a control command. Fault always wins: while the
// fault latch is set, every command except disarm is rejected.
func (s *Simulator) controlLocked(cmd uint32) error {
	switch cmd {
	case registers.CmdArm:
		if s.state != registers.StateIdle {
			return ErrCommandRejected
		}
		s.state = registers.StateArmed
		return nil

	case registers.CmdTrigger:
		if s.state != registers.StateArmed {
			return ErrCommandRejected
		}
		s.state = registers.StatePulseActive
		s.startPulseTimerLocked()
		return nil

	case registers.CmdDisarm:
		return s.disarmLocked()

	default:
		return ErrCommandRejected
	}
}

// disarmLocked handles the disarm command. Disarm in IDLE is a no-op so
// a disarm racing an autonomous COOLDOWN to IDLE transition stays safe.
// In FAULT the latch clears only if the underlying condition is gone;
// otherwise the write is accepted and the state is unchanged, which the
// driver observes by re-reading the state register.
func (s *Simulator) disarmLocked() error {
	switch s.state {
	case registers.StateIdle:
		return nil
	case registers.StateArmed, registers.StateCooldown:
		s.cancelTimersLocked()
		s.state = registers.StateIdle
		return nil
	case registers.StateFault:
		if s.faultActive {
			return nil
		}
		s.faultCode = 0
		s.state = registers.StateIdle
		return nil
	default:
		// PULSE_ACTIVE: the pulse is already in flight and cannot be
		// unfired.
		return ErrCommandRejected
	}
}

func (s *Simulator) statusLocked() uint32 {
	var w uint32
	if s.state != registers.StateFault {
		w |= registers.StatusBitReady
	}
	if s.state == registers.StatePulseActive || s.state == registers.StateCooldown {
		w |= registers.StatusBitBusy
	}
	if s.state == registers.StateArmed || s.state == registers.StatePulseActive ||
		s.state == registers.StateCooldown {
		w |= registers.StatusBitArmed
	}
	if s.state == registers.StateFault {
		w |= registers.StatusBitFault
		w |= uint32(s.faultCode) << registers.StatusFaultCodeShift
	}
	return w
}

func (s *Simulator) startPulseTimerLocked() {
	gen := s.generation
	dur := s.scaled(time.Duration(s.pulseWidth) * time.Nanosecond)
	s.pulseTimer = time.AfterFunc(dur, func() {
		s.pulseElapsed(gen)
	})
}

func (s *Simulator) pulseElapsed(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.state != registers.StatePulseActive {
		return
	}
	s.state = registers.StateCooldown
	dur := s.scaled(time.Duration(s.cooldownCycles) * time.Second / time.Duration(s.clockHz))
	s.cooldownTimer = time.AfterFunc(dur, func() {
		s.cooldownElapsed(gen)
	})
}

func (s *Simulator) cooldownElapsed(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.state != registers.StateCooldown {
		return
	}
	s.state = registers.StateIdle
}

func (s *Simulator) cancelTimersLocked() {
	s.generation++
	if s.pulseTimer != nil {
		s.pulseTimer.Stop()
		s.pulseTimer = nil
	}
	if s.cooldownTimer != nil {
		s.cooldownTimer.Stop()
		s.cooldownTimer = nil
	}
}

func (s *Simulator) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * s.scale)
}

// InjectFault latches a hardware fault. Fault detection preempts any
// in-flight or pending transition regardless of state.
func (s *Simulator) InjectFault(code uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelTimersLocked()
	s.faultCode = code
	s.faultActive = true
	s.state = registers.StateFault
}

// ClearFaultCondition marks the underlying fault condition as gone. The
// latch itself remains set until an explicit disarm.
func (s *Simulator) ClearFaultCondition() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faultActive = false
}

// State returns the current state machine state. Intended for tests and
// the operator console; drivers read RegState instead.
func (s *Simulator) State() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Compile-time interface satisfaction check.
var _ registers.Interface = (*Simulator)(nil)
