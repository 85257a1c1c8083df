package runs

import (
	"errors"
	"fmt"
)

var (
	ErrStepLimit = errors.New("step limit reached")
	ErrTapeLimit = errors.New("tape limit reached")
)

// HaltError reports a run stopped by a resource cap. The program itself was well formed.
type HaltError struct {
	Reason error
	Steps  uint64
	Cells  int
}

func (h *HaltError) Error() string {
	return fmt.Sprintf("halted after %d steps with %d cells: %v", h.Steps, h.Cells, h.Reason)
}

func (h *HaltError) Unwrap() error {
	return h.Reason
}
