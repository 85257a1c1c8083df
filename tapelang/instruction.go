package tapelang

import (
	"fmt"
	"strings"
)

type Instruction struct {
	Op     Kind
	Repeat int
	// Target is the index of the matching loop instruction. Unused for other ops.
	Target int
	Offset int
	Pos    Pos
}

func (i Instruction) String() string {
	switch i.Op {
	case LoopBegin, LoopEnd:
		return fmt.Sprintf("%s(%d)", i.Op, i.Target)
	}
	if i.Repeat > 1 {
		return fmt.Sprintf("%s*%d", i.Op, i.Repeat)
	}
	return i.Op.String()
}

type Program struct {
	Source *Source
	Code   []Instruction
}

// Check verifies that every loop instruction names a partner that names it back, that each
// begin precedes its end, and that pairs nest.
func (p *Program) Check() error {
	var stack []int
	for i, inst := range p.Code {
		if inst.Repeat < 1 {
			return fmt.Errorf("instruction %d: bad repeat %d", i, inst.Repeat)
		}
		switch inst.Op {
		case Increase, Decrease, MoveLeft, MoveRight, Input, Output:
		case LoopBegin:
			if inst.Target <= i || inst.Target >= len(p.Code) {
				return fmt.Errorf("instruction %d: bad loop target %d", i, inst.Target)
			}
			if end := p.Code[inst.Target]; end.Op != LoopEnd || end.Target != i {
				return fmt.Errorf("instruction %d: target %d is not its partner", i, inst.Target)
			}
			stack = append(stack, i)
		case LoopEnd:
			if len(stack) == 0 || stack[len(stack)-1] != inst.Target {
				return fmt.Errorf("instruction %d: improperly nested loop end", i)
			}
			stack = stack[:len(stack)-1]
		default:
			return fmt.Errorf("instruction %d: bad op %s", i, inst.Op)
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("instruction %d: loop not closed", stack[len(stack)-1])
	}
	return nil
}

// Text renders the program back to source form, expanding repeats.
func (p *Program) Text() string {
	var sb strings.Builder
	for _, inst := range p.Code {
		for range inst.Repeat {
			sb.WriteRune(inst.Op.Char())
		}
	}
	return sb.String()
}
