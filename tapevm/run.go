package tapevm

import (
	"fmt"
	"io"

	"github.com/reusee/tape/tapelang"
)

func (v *VM) Run(yield func(*Interrupt, error) bool) {
	code := v.Program.Code
	tape := v.Tape
	if v.YieldEvery > 0 {
		v.nextYield = v.Steps + v.YieldEvery
	}

	for {
		if v.IP < 0 || v.IP >= len(code) {
			return
		}

		if v.YieldEvery > 0 && v.Steps >= v.nextYield {
			if !yield(InterruptYield, nil) {
				return
			}
			// the handler may have replaced the tape or changed the interval
			tape = v.Tape
			if v.YieldEvery > 0 {
				v.nextYield = v.Steps + v.YieldEvery
			}
		}

		inst := &code[v.IP]
		v.Steps++

		switch inst.Op {
		case tapelang.Increase:
			tape.Add(byte(inst.Repeat))

		case tapelang.Decrease:
			tape.Sub(byte(inst.Repeat))

		case tapelang.MoveRight:
			tape.Right(inst.Repeat)

		case tapelang.MoveLeft:
			tape.Left(inst.Repeat)

		case tapelang.Output:
			for range inst.Repeat {
				v.buf[0] = tape.Get()
				if _, err := v.Output.Write(v.buf[:]); err != nil {
					yield(nil, fmt.Errorf("output: %w", err))
					return
				}
			}

		case tapelang.Input:
			for range inst.Repeat {
				if err := v.input(tape); err != nil {
					yield(nil, err)
					return
				}
			}

		case tapelang.LoopBegin:
			if !v.isPartner(inst.Target, tapelang.LoopEnd) {
				yield(nil, fmt.Errorf("%w: instruction %d", ErrUnresolvedJump, v.IP))
				return
			}
			if tape.Get() == 0 {
				v.IP = inst.Target
			}

		case tapelang.LoopEnd:
			if !v.isPartner(inst.Target, tapelang.LoopBegin) {
				yield(nil, fmt.Errorf("%w: instruction %d", ErrUnresolvedJump, v.IP))
				return
			}
			if tape.Get() != 0 {
				v.IP = inst.Target
			}

		default:
			yield(nil, fmt.Errorf("bad instruction %d: %s", v.IP, inst.Op))
			return
		}

		v.IP++
	}
}

func (v *VM) isPartner(target int, op tapelang.Kind) bool {
	code := v.Program.Code
	if target < 0 || target >= len(code) {
		return false
	}
	partner := code[target]
	return partner.Op == op && partner.Target == v.IP
}

func (v *VM) input(tape *Tape) error {
	if v.Input == nil {
		tape.Set(0)
		return nil
	}
	_, err := io.ReadFull(v.Input, v.buf[:])
	if err == io.EOF {
		switch v.EOF {
		case EOFUnchanged:
			return nil
		case EOFError:
			return fmt.Errorf("instruction %d: %w", v.IP, ErrEndOfInput)
		}
		tape.Set(0)
		return nil
	}
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	tape.Set(v.buf[0])
	return nil
}
