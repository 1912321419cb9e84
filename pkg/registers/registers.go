package registers

import "errors"

// Register access errors.
var (
	ErrUnknownRegister = errors.New("unknown register")
	ErrReadOnly        = errors.New("register is read-only")
)

// Canonical register names. The register map is identical for the real
// and simulated back ends.
const (
	// RegVoltageMV holds the configured drive voltage in millivolts,
	// encoded as a signed 32-bit value.
	RegVoltageMV = "voltage_mv"

	// RegPulseWidthNS holds the configured pulse width in nanoseconds.
	RegPulseWidthNS = "pulse_width_ns"

	// RegControl accepts write-one commands (CmdArm, CmdTrigger,
	// CmdDisarm). Reads return zero.
	RegControl = "control"

	// RegState reads back the hardware state machine state (StateIdle
	// through StateFault). Read-only.
	RegState = "state"

	// RegStatus reads back the status bitfield (StatusBit* flags in
	// the low byte, fault code in the second byte). Read-only.
	RegStatus = "status"

	// RegFaultCode reads back the latched fault code; zero when no
	// fault is present. Read-only.
	RegFaultCode = "fault_code"
)

// Control register commands.
const (
	CmdArm     uint32 = 1
	CmdTrigger uint32 = 2
	CmdDisarm  uint32 = 3
)

// Hardware state codes as they appear in RegState.
const (
	StateIdle        uint32 = 0
	StateArmed       uint32 = 1
	StatePulseActive uint32 = 2
	StateCooldown    uint32 = 3
	StateFault       uint32 = 4
)

// Status register bit layout.
const (
	StatusBitReady uint32 = 1 << 0
	StatusBitBusy  uint32 = 1 << 1
	StatusBitArmed uint32 = 1 << 2
	StatusBitFault uint32 = 1 << 3

	// StatusFaultCodeShift positions the fault code in the status word.
	StatusFaultCodeShift = 8
	StatusFaultCodeMask  = 0xFF
)

// StateName returns a human-readable name for a RegState value.
func StateName(state uint32) string {
	switch state {
	case StateIdle:
		return "IDLE"
	case StateArmed:
		return "ARMED"
	case StatePulseActive:
		return "PULSE_ACTIVE"
	case StateCooldown:
		return "COOLDOWN"
	case StateFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// Interface is the sole hardware boundary. Implementations must be safe
// for use by a single logical owner; concurrent writes to one device
// from multiple call sites are a usage error the driver layer prevents.
type Interface interface {
	// SetRegister writes value to the named register.
	SetRegister(name string, value uint32) error

	// GetRegister reads the named register.
	GetRegister(name string) (uint32, error)
}

// EncodeVoltageMV encodes a signed millivolt value for RegVoltageMV.
func EncodeVoltageMV(mv int32) uint32 {
	return uint32(mv)
}

// DecodeVoltageMV decodes a RegVoltageMV value back to signed millivolts.
func DecodeVoltageMV(raw uint32) int32 {
	return int32(raw)
}
