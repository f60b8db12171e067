package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// InstrumentState contains the persisted settings of the instrument.
type InstrumentState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Function is the measurement function short form ("VOLT:DC").
	Function string `json:"function"`

	// RangeAuto selects automatic ranging.
	RangeAuto bool `json:"range_auto"`

	// RangeUpper is the fixed full-scale range in volts.
	RangeUpper float64 `json:"range_upper,omitempty"`

	// Resolution is the measurement resolution in volts.
	Resolution float64 `json:"resolution"`

	// TriggerCount is the number of readings per INITiate.
	TriggerCount int `json:"trigger_count,omitempty"`
}

// StateStore manages persistence of instrument state to a JSON file.
type StateStore struct {
	mu   sync.Mutex
	path string
}

// NewStateStore creates a new state store.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Save persists the instrument state to disk.
func (s *StateStore) Save(state *InstrumentState) error {
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

// Load reads the instrument state from disk.
// Returns nil, nil if the file doesn't exist (no saved state).
func (s *StateStore) Load() (*InstrumentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state InstrumentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("corrupt state file %s: %w", s.path, err)
	}
	if state.Version != StateVersion {
		return nil, fmt.Errorf("unsupported state version %d in %s", state.Version, s.path)
	}
	return &state, nil
}

// Delete removes the state file.
// Returns nil if the file doesn't exist.
func (s *StateStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
