package runs

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/tape/logs"
	"github.com/reusee/tape/modes"
	"github.com/reusee/tape/tapelang"
	"github.com/reusee/tape/tapevm"
)

type Spec struct {
	Name   string
	Source io.Reader

	Input  io.Reader // nil for zero input
	Output io.Writer // nil to discard

	// Tape continues a previous run's memory when not nil.
	Tape *tapevm.Tape

	// VM resumes a suspended machine. Source and Tape are ignored.
	VM *tapevm.VM
}

type Result struct {
	Name    string
	Program *tapelang.Program
	Tape    *tapevm.Tape
	// Steps executed by this run, not counting steps before a resume
	Steps uint64
	// Halt is a *HaltError when a cap stopped the run.
	Halt error
	// VM can be suspended and resumed when halted.
	VM *tapevm.VM
}

// Run compiles and executes one program, or continues Spec.VM. Malformed programs are rejected
// before execution.
// A cap breach is not an error: it is reported in Result.Halt.
type Run func(ctx context.Context, spec Spec) (*Result, error)

func (Module) Run(
	logger logs.Logger,
	newSpan logs.NewSpan,
	config Config,
	mode modes.Mode,
) Run {
	return func(ctx context.Context, spec Spec) (*Result, error) {
		ctx, _ = newSpan(ctx, "")

		vm := spec.VM
		if vm == nil {
			program, err := tapelang.Compile(spec.Name, spec.Source, tapelang.ParseOptions{
				Coalesce: config.Coalesce,
			})
			if err != nil {
				logger.WarnContext(ctx, "compile failed",
					"name", spec.Name,
					"error", err,
				)
				return nil, err
			}
			logger.InfoContext(ctx, "compiled",
				"name", spec.Name,
				"instructions", len(program.Code),
				"coalesce", config.Coalesce,
			)
			vm = tapevm.NewVM(program)
			if spec.Tape != nil {
				vm.Tape = spec.Tape
			}
		} else {
			logger.InfoContext(ctx, "resumed",
				"name", spec.Name,
				"ip", vm.IP,
				"steps", vm.Steps,
			)
		}
		program := vm.Program
		if mode == modes.ModeDevelopment {
			if err := program.Check(); err != nil {
				return nil, fmt.Errorf("%w: %v", tapevm.ErrUnresolvedJump, err)
			}
		}

		vm.Input = spec.Input
		vm.Output = io.Discard
		if spec.Output != nil {
			vm.Output = spec.Output
		}
		vm.EOF = config.EOF
		start := vm.Steps

		interval := config.YieldEvery
		if interval == 0 {
			interval = 1 << 16
		}
		vm.YieldEvery = nextInterval(interval, config.StepLimit, 0)

		result := &Result{
			Name:    spec.Name,
			Program: program,
			VM:      vm,
		}

	loop:
		for _, err := range vm.Run {
			if err != nil {
				logger.ErrorContext(ctx, "run failed",
					"name", spec.Name,
					"ip", vm.IP,
					"steps", vm.Steps,
					"error", err,
				)
				return nil, logs.WrapSpan(ctx, err)
			}

			if err := ctx.Err(); err != nil {
				return nil, err
			}

			switch {
			case config.StepLimit > 0 && vm.Steps-start >= config.StepLimit:
				result.Halt = &HaltError{
					Reason: ErrStepLimit,
					Steps:  vm.Steps - start,
					Cells:  vm.Tape.Len(),
				}
				break loop
			case config.TapeLimit > 0 && vm.Tape.Len() > config.TapeLimit:
				result.Halt = &HaltError{
					Reason: ErrTapeLimit,
					Steps:  vm.Steps - start,
					Cells:  vm.Tape.Len(),
				}
				break loop
			}

			logger.DebugContext(ctx, "checkpoint",
				"steps", vm.Steps,
				"cells", vm.Tape.Len(),
			)
			vm.YieldEvery = nextInterval(interval, config.StepLimit, vm.Steps-start)
		}

		// growth after the last checkpoint
		if result.Halt == nil && config.TapeLimit > 0 && vm.Tape.Len() > config.TapeLimit {
			result.Halt = &HaltError{
				Reason: ErrTapeLimit,
				Steps:  vm.Steps - start,
				Cells:  vm.Tape.Len(),
			}
		}

		result.Tape = vm.Tape
		result.Steps = vm.Steps - start
		if result.Halt != nil {
			logger.WarnContext(ctx, "halted",
				"name", spec.Name,
				"reason", result.Halt,
			)
		} else {
			logger.InfoContext(ctx, "finished",
				"name", spec.Name,
				"steps", result.Steps,
				"cells", vm.Tape.Len(),
			)
		}
		return result, nil
	}
}

// nextInterval shrinks the checkpoint interval so the step limit is hit exactly.
func nextInterval(interval uint64, limit uint64, steps uint64) uint64 {
	if limit == 0 {
		return interval
	}
	if steps >= limit {
		return 1
	}
	return min(interval, limit-steps)
}
