package ledger

import (
	"encoding/json"
	"os"
	"time"

	"OptionSentinel/internal/model"
)

// State is the persisted daily counter snapshot.
type State struct {
	Day       string             `json:"day"` // 2006-01-02
	Counts    map[model.Side]int `json:"counts"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewState returns an empty state stamped with today's date.
func NewState() *State {
	return &State{
		Day:    time.Now().Format("2006-01-02"),
		Counts: map[model.Side]int{model.SideCall: 0, model.SidePut: 0},
	}
}

// Stale reports whether the state belongs to an earlier trading day.
func (s *State) Stale() bool {
	return s.Day != time.Now().Format("2006-01-02")
}

// LoadState reads ledger state from a JSON file. Returns a fresh state if
// the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Counts == nil {
		state.Counts = map[model.Side]int{model.SideCall: 0, model.SidePut: 0}
	}
	return &state, nil
}

// SaveState writes the ledger state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
