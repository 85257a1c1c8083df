package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reusee/tape/debugs"
	"github.com/reusee/tape/logs"
	"github.com/reusee/tape/runs"
	"github.com/reusee/tape/tapefiles"
	"github.com/reusee/tape/tapelang"
	"github.com/reusee/tape/tapevm"
)

type Invocation struct {
	Specs     []runs.Spec
	Input     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Dump      bool
	DumpCode  bool
	StatePath string
	// Resume continues the run suspended in the state file before Specs.
	Resume bool
	Tap    bool
}

// Execute runs the invocation's programs and returns the exit status.
// With a state file or a single program, programs run in order on one tape.
// Otherwise they run as an independent batch, each reading its own copy of the input.
type Execute func(ctx context.Context, inv Invocation) int

func (Module) Execute(
	logger logs.Logger,
	run runs.Run,
	runAll runs.RunAll,
	open tapefiles.Open,
	tap debugs.Tap,
) Execute {
	return func(ctx context.Context, inv Invocation) int {
		var outcomes []runs.Outcome
		specs := inv.Specs

		switch {

		case inv.StatePath != "":
			err := open(inv.StatePath).Update(ctx, func(state *tapefiles.State) error {
				tape, err := state.Tape()
				if err != nil {
					return err
				}
				if inv.Resume {
					vm, err := state.Resume()
					if err != nil {
						return err
					}
					specs = append([]runs.Spec{{
						Name: vm.Program.Source.Name,
						VM:   vm,
					}}, specs...)
				}
				outcomes = runSequence(ctx, run, specs, inv.Input, inv.Stdout, tape)
				for _, outcome := range outcomes {
					if result := outcome.Result; result != nil {
						tape = result.Tape
						state.Suspended = nil
						if result.Halt != nil {
							if err := state.Suspend(result.VM); err != nil {
								return err
							}
						}
					}
					state.Record(tape, runEntry(outcome))
				}
				return nil
			})
			if err != nil {
				fmt.Fprintf(inv.Stderr, "state: %v\n", err)
				return exitError
			}

		case len(specs) == 1:
			outcomes = runSequence(ctx, run, specs, inv.Input, inv.Stdout, nil)

		default:
			var input []byte
			if inv.Input != nil {
				var err error
				input, err = io.ReadAll(inv.Input)
				if err != nil {
					fmt.Fprintf(inv.Stderr, "read input: %v\n", err)
					return exitError
				}
			}
			batch := make([]runs.Spec, len(specs))
			for i, spec := range specs {
				if inv.Input != nil {
					spec.Input = bytes.NewReader(input)
				}
				batch[i] = spec
			}
			var err error
			outcomes, err = runAll(ctx, batch, inv.Stdout)
			if err != nil {
				logger.ErrorContext(ctx, "write output", "error", err)
				fmt.Fprintf(inv.Stderr, "%v\n", err)
				return exitError
			}

		}

		return report(ctx, inv, specs, outcomes, tap)
	}
}

// runSequence runs specs one after another on a shared tape, stopping at the first failure or halt.
// Each run works on a copy, so a failed run leaves the tape as it was before it.
func runSequence(
	ctx context.Context,
	run runs.Run,
	specs []runs.Spec,
	input io.Reader,
	output io.Writer,
	tape *tapevm.Tape,
) (outcomes []runs.Outcome) {
	for _, spec := range specs {
		spec.Input = input
		spec.Output = output
		if tape != nil {
			spec.Tape = tape.Clone()
		}
		result, err := run(ctx, spec)
		outcomes = append(outcomes, runs.Outcome{
			Result: result,
			Err:    err,
		})
		if err != nil || result.Halt != nil {
			break
		}
		tape = result.Tape
	}
	return
}

func runEntry(outcome runs.Outcome) tapefiles.RunEntry {
	entry := tapefiles.RunEntry{
		Time: time.Now(),
	}
	if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
	}
	if result := outcome.Result; result != nil {
		entry.Name = result.Name
		entry.Steps = result.Steps
		if result.Halt != nil {
			entry.Halt = result.Halt.Error()
		}
	}
	return entry
}

func report(
	ctx context.Context,
	inv Invocation,
	specs []runs.Spec,
	outcomes []runs.Outcome,
	tap debugs.Tap,
) int {
	code := exitOK
	for i, outcome := range outcomes {
		name := specs[i].Name

		if err := outcome.Err; err != nil {
			fmt.Fprintf(inv.Stderr, "%s: %v\n", name, err)
			code = exitError
			if errors.Is(err, context.Canceled) {
				break
			}
			continue
		}

		result := outcome.Result
		if result.Halt != nil {
			fmt.Fprintf(inv.Stderr, "%s: %v\n", name, result.Halt)
			if code == exitOK {
				code = exitHalted
			}
		}
		if inv.DumpCode {
			fmt.Fprintf(inv.Stderr, "%s: code: %s\n", name, codeText(result.Program))
		}
		if inv.Dump {
			fmt.Fprintf(inv.Stderr, "%s: %v\n", name, result.Tape)
		}
		if inv.Tap {
			tap(ctx, name, debugs.Globals(result.Program, result.Tape, result.Steps))
		}
	}
	return code
}

// codeText renders the compiled instruction stream, one instruction per field.
func codeText(program *tapelang.Program) string {
	fields := make([]string, 0, len(program.Code))
	for _, inst := range program.Code {
		fields = append(fields, inst.String())
	}
	return strings.Join(fields, " ")
}
