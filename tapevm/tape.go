package tapevm

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
)

// Tape is a byte tape that materializes zero cells on demand in both directions.
// Cells left of lo are headroom: never written, so always zero.
type Tape struct {
	buf    []byte
	lo     int
	cursor int
	origin int
}

func NewTape() *Tape {
	return &Tape{
		buf: make([]byte, 1),
	}
}

type TapeState struct {
	Cells  []byte
	Cursor int
	Origin int
}

func NewTapeFromState(state TapeState) (*Tape, error) {
	if len(state.Cells) == 0 {
		return nil, errors.New("empty tape")
	}
	if state.Cursor < 0 || state.Cursor >= len(state.Cells) {
		return nil, fmt.Errorf("cursor %d out of range", state.Cursor)
	}
	if state.Origin < 0 || state.Origin >= len(state.Cells) {
		return nil, fmt.Errorf("origin %d out of range", state.Origin)
	}
	buf := make([]byte, len(state.Cells))
	copy(buf, state.Cells)
	return &Tape{
		buf:    buf,
		cursor: state.Cursor,
		origin: state.Origin,
	}, nil
}

func (t *Tape) State() TapeState {
	return TapeState{
		Cells:  t.Cells(),
		Cursor: t.Cursor(),
		Origin: t.Origin(),
	}
}

// Clone returns an independent copy sharing no cells with t.
func (t *Tape) Clone() *Tape {
	buf := make([]byte, len(t.buf))
	copy(buf, t.buf)
	return &Tape{
		buf:    buf,
		lo:     t.lo,
		cursor: t.cursor,
		origin: t.origin,
	}
}

// Cells returns a copy of the materialized cells.
func (t *Tape) Cells() []byte {
	ret := make([]byte, len(t.buf)-t.lo)
	copy(ret, t.buf[t.lo:])
	return ret
}

func (t *Tape) Len() int {
	return len(t.buf) - t.lo
}

func (t *Tape) Cursor() int {
	return t.cursor - t.lo
}

// Origin returns the index of the initial cell.
func (t *Tape) Origin() int {
	return t.origin - t.lo
}

func (t *Tape) Get() byte {
	return t.buf[t.cursor]
}

func (t *Tape) Set(b byte) {
	t.buf[t.cursor] = b
}

func (t *Tape) Add(n byte) {
	t.buf[t.cursor] += n
}

func (t *Tape) Sub(n byte) {
	t.buf[t.cursor] -= n
}

func (t *Tape) Right(n int) {
	t.cursor += n
	if t.cursor >= len(t.buf) {
		t.buf = append(t.buf, make([]byte, t.cursor-len(t.buf)+1)...)
	}
}

func (t *Tape) Left(n int) {
	pos := t.cursor - n
	if pos >= t.lo {
		t.cursor = pos
		return
	}
	if pos < 0 {
		extra := max(-pos, len(t.buf))
		buf := make([]byte, extra+len(t.buf))
		copy(buf[extra:], t.buf)
		t.buf = buf
		t.lo += extra
		t.origin += extra
		pos += extra
	}
	t.lo = pos
	t.cursor = pos
}

func (t *Tape) String() string {
	var buf bytes.Buffer
	buf.WriteString("[")
	cursor := t.Cursor()
	for i, c := range t.buf[t.lo:] {
		if i > 0 {
			buf.WriteString(" ")
		}
		if i == cursor {
			fmt.Fprintf(&buf, "(%d)", c)
		} else {
			fmt.Fprintf(&buf, "%d", c)
		}
	}
	buf.WriteString("]")
	return buf.String()
}

func (t *Tape) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t.State()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Tape) GobDecode(data []byte) error {
	var state TapeState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	tape, err := NewTapeFromState(state)
	if err != nil {
		return err
	}
	*t = *tape
	return nil
}
