package tapefiles

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/reusee/tape/tapevm"
)

const maxRuns = 64

var ErrNothingSuspended = errors.New("no suspended run")

type RunEntry struct {
	Time  time.Time `json:"time"`
	Name  string    `json:"name"`
	Steps uint64    `json:"steps"`
	Halt  string    `json:"halt,omitempty"`
	Error string    `json:"error,omitempty"`
}

// State is the persisted machine memory. Cursor and Origin index into Cells.
type State struct {
	Cells  []int      `json:"cells"`
	Cursor int        `json:"cursor"`
	Origin int        `json:"origin"`
	Steps  uint64     `json:"steps"`
	Runs   []RunEntry `json:"runs,omitempty"`

	// Suspended is a gob machine snapshot of a run stopped by a cap.
	Suspended []byte `json:"suspended,omitempty"`
}

// Tape rebuilds the tape. An empty state gives a fresh tape.
func (s *State) Tape() (*tapevm.Tape, error) {
	if len(s.Cells) == 0 {
		return tapevm.NewTape(), nil
	}
	cells := make([]byte, len(s.Cells))
	for i, c := range s.Cells {
		if c < 0 || c > 255 {
			return nil, fmt.Errorf("cell %d out of range: %d", i, c)
		}
		cells[i] = byte(c)
	}
	return tapevm.NewTapeFromState(tapevm.TapeState{
		Cells:  cells,
		Cursor: s.Cursor,
		Origin: s.Origin,
	})
}

// Record stores the tape after a run and appends to the run history.
func (s *State) Record(tape *tapevm.Tape, entry RunEntry) {
	if tape != nil {
		state := tape.State()
		s.Cells = make([]int, len(state.Cells))
		for i, c := range state.Cells {
			s.Cells[i] = int(c)
		}
		s.Cursor = state.Cursor
		s.Origin = state.Origin
	}
	s.Steps += entry.Steps
	s.Runs = append(s.Runs, entry)
	if len(s.Runs) > maxRuns {
		s.Runs = s.Runs[len(s.Runs)-maxRuns:]
	}
}

// Suspend stores the machine so a later invocation can continue it.
func (s *State) Suspend(vm *tapevm.VM) error {
	var buf bytes.Buffer
	if err := vm.Snapshot(&buf); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	s.Suspended = buf.Bytes()
	return nil
}

func (s *State) Resume() (*tapevm.VM, error) {
	if len(s.Suspended) == 0 {
		return nil, ErrNothingSuspended
	}
	vm := new(tapevm.VM)
	if err := vm.Restore(bytes.NewReader(s.Suspended)); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return vm, nil
}
