package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// MaxFaultHistory bounds how many fault records are kept per probe.
const MaxFaultHistory = 32

// ProbeState contains the persisted operational history for one probe.
type ProbeState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// ProbeID identifies the probe.
	ProbeID string `json:"probe_id"`

	// TotalPulses is the cumulative number of completed trigger cycles.
	TotalPulses uint64 `json:"total_pulses"`

	// TotalFaults is the cumulative number of latched faults.
	TotalFaults uint64 `json:"total_faults"`

	// LastVoltage is the last configured drive voltage in volts.
	LastVoltage float64 `json:"last_voltage,omitempty"`

	// LastPulseWidthNS is the last configured pulse width.
	LastPulseWidthNS uint64 `json:"last_pulse_width_ns,omitempty"`

	// FaultHistory holds the most recent fault records, newest last,
	// bounded by MaxFaultHistory.
	FaultHistory []FaultRecord `json:"fault_history,omitempty"`
}

// FaultRecord is one latched fault occurrence.
type FaultRecord struct {
	// Code is the fault code from the hardware.
	Code uint8 `json:"code"`

	// At is when the fault was observed.
	At time.Time `json:"at"`

	// SessionID identifies the session that observed it.
	SessionID string `json:"session_id,omitempty"`
}

// RecordFault appends a fault record, trimming history to the bound.
func (s *ProbeState) RecordFault(rec FaultRecord) {
	s.TotalFaults++
	s.FaultHistory = append(s.FaultHistory, rec)
	if len(s.FaultHistory) > MaxFaultHistory {
		s.FaultHistory = s.FaultHistory[len(s.FaultHistory)-MaxFaultHistory:]
	}
}

// ProbeStateStore manages persistence of probe state to a JSON file.
type ProbeStateStore struct {
	mu   sync.Mutex
	path string
}

// NewProbeStateStore creates a new probe state store.
func NewProbeStateStore(path string) *ProbeStateStore {
	return &ProbeStateStore{path: path}
}

// Save persists the probe state to disk.
func (s *ProbeStateStore) Save(state *ProbeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the probe state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *ProbeStateStore) Load() (*ProbeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &ProbeState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *ProbeStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
