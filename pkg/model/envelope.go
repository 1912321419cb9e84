package model

// SignalMode identifies the electrical signaling mode of a port.
type SignalMode uint8

const (
	// SignalModeUnknown indicates the mode has not been specified.
	SignalModeUnknown SignalMode = 0

	// SignalModeTTL is digital logic-level signaling (typically 0-3.3V).
	SignalModeTTL SignalMode = 1

	// SignalModeAnalog is full-range DAC output (may be bipolar).
	SignalModeAnalog SignalMode = 2
)

// String returns the signal mode name.
func (m SignalMode) String() string {
	switch m {
	case SignalModeTTL:
		return "TTL"
	case SignalModeAnalog:
		return "ANALOG"
	default:
		return "UNKNOWN"
	}
}

// ParseSignalMode parses a signal mode name as it appears in
// specification catalogs. Unrecognized names map to SignalModeUnknown.
func ParseSignalMode(s string) SignalMode {
	switch s {
	case "TTL", "ttl":
		return SignalModeTTL
	case "ANALOG", "analog":
		return SignalModeAnalog
	default:
		return SignalModeUnknown
	}
}

// ElectricalEnvelope describes the voltage range a port provides or
// requires in a given signal mode. Envelopes are attached to both probe
// input ports and platform output ports, and are immutable once
// constructed; they are authored by external specification catalogs.
type ElectricalEnvelope struct {
	// VoltageMin is the lower voltage bound in volts. Negative for
	// bipolar outputs.
	VoltageMin float64

	// VoltageMax is the upper voltage bound in volts.
	VoltageMax float64

	// Mode is the signal mode this envelope applies to.
	Mode SignalMode
}

// Contains reports whether v lies within the envelope's voltage range.
func (e ElectricalEnvelope) Contains(v float64) bool {
	return v >= e.VoltageMin && v <= e.VoltageMax
}

// ContainsRange reports whether the range [min, max] lies entirely
// within the envelope's voltage range.
func (e ElectricalEnvelope) ContainsRange(min, max float64) bool {
	return min >= e.VoltageMin && max <= e.VoltageMax
}

// Span returns the width of the voltage range in volts.
func (e ElectricalEnvelope) Span() float64 {
	return e.VoltageMax - e.VoltageMin
}
