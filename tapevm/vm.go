package tapevm

import (
	"encoding/gob"
	"errors"
	"io"

	"github.com/reusee/tape/tapelang"
)

var (
	ErrUnresolvedJump = errors.New("unresolved jump target")
	ErrEndOfInput     = errors.New("end of input")
)

type VM struct {
	Program *tapelang.Program
	IP      int
	Steps   uint64
	Tape    *Tape

	Input  io.Reader // if nil, Input stores 0
	Output io.Writer
	EOF    EOFPolicy

	// YieldEvery is the number of executed instructions between InterruptYield interrupts.
	// Zero disables interrupts. It may be changed while handling an interrupt.
	YieldEvery uint64

	nextYield uint64
	buf       [1]byte
}

func NewVM(program *tapelang.Program) *VM {
	return &VM{
		Program: program,
		Tape:    NewTape(),
		Output:  io.Discard,
	}
}

// Done reports whether the instruction pointer has passed the end of the program.
func (v *VM) Done() bool {
	return v.IP >= len(v.Program.Code)
}

type snapshot struct {
	Source     *tapelang.Source
	Code       []snapshotInstruction
	IP         int
	Steps      uint64
	Tape       *Tape
	EOF        EOFPolicy
	YieldEvery uint64
}

type snapshotInstruction struct {
	Op     tapelang.Kind
	Repeat int
	Target int
	Offset int
	Line   int
	Column int
}

// Snapshot encodes the program and machine state. Input and Output are not included.
func (v *VM) Snapshot(w io.Writer) error {
	s := snapshot{
		Source:     v.Program.Source,
		Code:       make([]snapshotInstruction, 0, len(v.Program.Code)),
		IP:         v.IP,
		Steps:      v.Steps,
		Tape:       v.Tape,
		EOF:        v.EOF,
		YieldEvery: v.YieldEvery,
	}
	for _, inst := range v.Program.Code {
		s.Code = append(s.Code, snapshotInstruction{
			Op:     inst.Op,
			Repeat: inst.Repeat,
			Target: inst.Target,
			Offset: inst.Offset,
			Line:   inst.Pos.Line,
			Column: inst.Pos.Column,
		})
	}
	return gob.NewEncoder(w).Encode(s)
}

func (v *VM) Restore(r io.Reader) error {
	var s snapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return err
	}
	program := &tapelang.Program{
		Source: s.Source,
		Code:   make([]tapelang.Instruction, 0, len(s.Code)),
	}
	for _, inst := range s.Code {
		program.Code = append(program.Code, tapelang.Instruction{
			Op:     inst.Op,
			Repeat: inst.Repeat,
			Target: inst.Target,
			Offset: inst.Offset,
			Pos: tapelang.Pos{
				Source: s.Source,
				Line:   inst.Line,
				Column: inst.Column,
			},
		})
	}
	v.Program = program
	v.IP = s.IP
	v.Steps = s.Steps
	v.Tape = s.Tape
	if v.Tape == nil {
		v.Tape = NewTape()
	}
	v.EOF = s.EOF
	v.YieldEvery = s.YieldEvery
	if v.Output == nil {
		v.Output = io.Discard
	}
	return nil
}
