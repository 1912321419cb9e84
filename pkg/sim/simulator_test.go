package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/sealablab/BPD-001/pkg/registers"
)

// fastSim returns a simulator with a 1 ms cooldown so autonomous
// transitions complete quickly but are still observable.
func fastSim() *Simulator {
	return New(Config{CooldownCycles: 100_000}) // 1 ms at 100 MHz
}

// waitState polls until the simulator reaches the given state or the
// deadline passes.
func waitState(t *testing.T, s *Simulator, want uint32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.State() == want {
			return
		}
		time.Sleep(100 * time.Microsecond)
	}
	t.Fatalf("state = %s, want %s", registers.StateName(s.State()), registers.StateName(want))
}

func TestSimulatorInitialState(t *testing.T) {
	s := New(Config{})

	if s.State() != registers.StateIdle {
		t.Errorf("initial state = %s, want IDLE", registers.StateName(s.State()))
	}
	if s.ClockHz() != DefaultClockHz {
		t.Errorf("ClockHz() = %d, want default", s.ClockHz())
	}
	if s.CooldownCycles() != DefaultCooldownCycles {
		t.Errorf("CooldownCycles() = %d, want default", s.CooldownCycles())
	}
}

func TestSimulatorConfigRegisters(t *testing.T) {
	s := New(Config{})

	if err := s.SetRegister(registers.RegVoltageMV, registers.EncodeVoltageMV(-2500)); err != nil {
		t.Fatalf("SetRegister(voltage) = %v", err)
	}
	raw, err := s.GetRegister(registers.RegVoltageMV)
	if err != nil {
		t.Fatalf("GetRegister(voltage) = %v", err)
	}
	if mv := registers.DecodeVoltageMV(raw); mv != -2500 {
		t.Errorf("voltage readback = %d, want -2500", mv)
	}

	if err := s.SetRegister(registers.RegPulseWidthNS, 50); err != nil {
		t.Fatalf("SetRegister(pulse_width) = %v", err)
	}
}

func TestSimulatorRegisterErrors(t *testing.T) {
	s := New(Config{})

	if err := s.SetRegister("bogus", 1); !errors.Is(err, registers.ErrUnknownRegister) {
		t.Errorf("SetRegister(bogus) = %v, want ErrUnknownRegister", err)
	}
	if _, err := s.GetRegister("bogus"); !errors.Is(err, registers.ErrUnknownRegister) {
		t.Errorf("GetRegister(bogus) = %v, want ErrUnknownRegister", err)
	}
	if err := s.SetRegister(registers.RegState, 2); !errors.Is(err, registers.ErrReadOnly) {
		t.Errorf("SetRegister(state) = %v, want ErrReadOnly", err)
	}
	if err := s.SetRegister(registers.RegStatus, 2); !errors.Is(err, registers.ErrReadOnly) {
		t.Errorf("SetRegister(status) = %v, want ErrReadOnly", err)
	}
}

func TestSimulatorArmTriggerCooldownCycle(t *testing.T) {
	s := fastSim()

	if err := s.SetRegister(registers.RegPulseWidthNS, 50); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatalf("arm = %v", err)
	}
	if s.State() != registers.StateArmed {
		t.Fatalf("state after arm = %s, want ARMED", registers.StateName(s.State()))
	}

	if err := s.SetRegister(registers.RegControl, registers.CmdTrigger); err != nil {
		t.Fatalf("trigger = %v", err)
	}

	// The pulse elapses on the hardware's own timer, then cooldown,
	// then the autonomous return to IDLE.
	waitState(t, s, registers.StateIdle)
}

func TestSimulatorTriggerWithoutArmRejected(t *testing.T) {
	s := fastSim()

	err := s.SetRegister(registers.RegControl, registers.CmdTrigger)
	if !errors.Is(err, ErrCommandRejected) {
		t.Fatalf("trigger from IDLE = %v, want ErrCommandRejected", err)
	}
	if s.State() != registers.StateIdle {
		t.Errorf("state after rejected trigger = %s, want IDLE", registers.StateName(s.State()))
	}
}

func TestSimulatorDoubleArmRejected(t *testing.T) {
	s := fastSim()

	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdArm); !errors.Is(err, ErrCommandRejected) {
		t.Errorf("second arm = %v, want ErrCommandRejected", err)
	}
}

func TestSimulatorDisarmFromArmed(t *testing.T) {
	s := fastSim()

	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdDisarm); err != nil {
		t.Fatalf("disarm = %v", err)
	}
	if s.State() != registers.StateIdle {
		t.Errorf("state = %s, want IDLE", registers.StateName(s.State()))
	}
}

func TestSimulatorDisarmDuringCooldown(t *testing.T) {
	// Long cooldown so we reliably catch the COOLDOWN window.
	s := New(Config{CooldownCycles: 50_000_000}) // 500 ms

	if err := s.SetRegister(registers.RegPulseWidthNS, 50); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdTrigger); err != nil {
		t.Fatal(err)
	}
	waitState(t, s, registers.StateCooldown)

	// Early exit is still safe: cooldown already begun.
	if err := s.SetRegister(registers.RegControl, registers.CmdDisarm); err != nil {
		t.Fatalf("disarm in COOLDOWN = %v", err)
	}
	if s.State() != registers.StateIdle {
		t.Errorf("state = %s, want IDLE", registers.StateName(s.State()))
	}

	// The cancelled cooldown timer must not fire into the new cycle.
	time.Sleep(2 * time.Millisecond)
	if s.State() != registers.StateIdle {
		t.Errorf("stale timer moved state to %s", registers.StateName(s.State()))
	}
}

func TestSimulatorDisarmInIdleIsNoop(t *testing.T) {
	s := fastSim()
	// A disarm racing the autonomous COOLDOWN to IDLE transition must
	// stay harmless.
	if err := s.SetRegister(registers.RegControl, registers.CmdDisarm); err != nil {
		t.Errorf("disarm in IDLE = %v, want nil", err)
	}
}

func TestSimulatorFaultPreemptsCooldown(t *testing.T) {
	s := New(Config{CooldownCycles: 50_000_000}) // 500 ms

	if err := s.SetRegister(registers.RegPulseWidthNS, 50); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdTrigger); err != nil {
		t.Fatal(err)
	}
	waitState(t, s, registers.StateCooldown)

	s.InjectFault(7)
	if s.State() != registers.StateFault {
		t.Fatalf("state after fault = %s, want FAULT", registers.StateName(s.State()))
	}

	code, err := s.GetRegister(registers.RegFaultCode)
	if err != nil || code != 7 {
		t.Errorf("fault code = %d, %v, want 7", code, err)
	}

	// The preempted cooldown timer must not resurrect the cycle.
	time.Sleep(2 * time.Millisecond)
	if s.State() != registers.StateFault {
		t.Errorf("stale timer cleared fault: state = %s", registers.StateName(s.State()))
	}

	// Disarm with the condition still present leaves the latch set.
	if err := s.SetRegister(registers.RegControl, registers.CmdDisarm); err != nil {
		t.Fatalf("disarm in FAULT = %v", err)
	}
	if s.State() != registers.StateFault {
		t.Error("latch cleared while fault condition still present")
	}

	// Once the condition is gone, disarm releases the latch.
	s.ClearFaultCondition()
	if err := s.SetRegister(registers.RegControl, registers.CmdDisarm); err != nil {
		t.Fatalf("disarm after clear = %v", err)
	}
	if s.State() != registers.StateIdle {
		t.Errorf("state = %s, want IDLE", registers.StateName(s.State()))
	}
	if code, _ := s.GetRegister(registers.RegFaultCode); code != 0 {
		t.Errorf("fault code after clear = %d, want 0", code)
	}
}

func TestSimulatorFaultWinsOverArm(t *testing.T) {
	s := fastSim()
	s.InjectFault(2)

	if err := s.SetRegister(registers.RegControl, registers.CmdArm); !errors.Is(err, ErrCommandRejected) {
		t.Errorf("arm in FAULT = %v, want ErrCommandRejected", err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdTrigger); !errors.Is(err, ErrCommandRejected) {
		t.Errorf("trigger in FAULT = %v, want ErrCommandRejected", err)
	}
}

func TestSimulatorStatusWord(t *testing.T) {
	s := New(Config{CooldownCycles: 50_000_000})

	status := func() uint32 {
		w, err := s.GetRegister(registers.RegStatus)
		if err != nil {
			t.Fatalf("GetRegister(status) = %v", err)
		}
		return w
	}

	// IDLE: ready only.
	if w := status(); w != registers.StatusBitReady {
		t.Errorf("IDLE status = %#x, want ready only", w)
	}

	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatal(err)
	}
	if w := status(); w&registers.StatusBitArmed == 0 || w&registers.StatusBitBusy != 0 {
		t.Errorf("ARMED status = %#x, want armed and not busy", w)
	}

	s.InjectFault(9)
	w := status()
	if w&registers.StatusBitFault == 0 {
		t.Errorf("FAULT status = %#x, missing fault bit", w)
	}
	if w&registers.StatusBitReady != 0 {
		t.Errorf("FAULT status = %#x, ready must be clear", w)
	}
	if code := (w >> registers.StatusFaultCodeShift) & registers.StatusFaultCodeMask; code != 9 {
		t.Errorf("status fault code = %d, want 9", code)
	}
}

func TestSimulatorTimeScale(t *testing.T) {
	// 1 ms cooldown stretched 100x: still in COOLDOWN well after the
	// unscaled duration.
	s := New(Config{CooldownCycles: 100_000, TimeScale: 100})

	if err := s.SetRegister(registers.RegPulseWidthNS, 10); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdArm); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRegister(registers.RegControl, registers.CmdTrigger); err != nil {
		t.Fatal(err)
	}

	waitState(t, s, registers.StateCooldown)
	time.Sleep(5 * time.Millisecond)
	if s.State() != registers.StateCooldown {
		t.Errorf("state = %s, want COOLDOWN (scaled timing)", registers.StateName(s.State()))
	}
	waitState(t, s, registers.StateIdle)
}
