package runs

import (
	"bytes"
	"context"
	"io"

	"github.com/reusee/tape/syncs"
)

type Outcome struct {
	Result *Result
	Err    error
}

// RunAll runs specs concurrently, bounded by Config.Jobs. Each program's output is buffered
// and written to output in the order of specs.
type RunAll func(ctx context.Context, specs []Spec, output io.Writer) ([]Outcome, error)

func (Module) RunAll(
	run Run,
	config Config,
) RunAll {
	return func(ctx context.Context, specs []Spec, output io.Writer) ([]Outcome, error) {
		jobs := max(config.Jobs, 1)
		sem := syncs.NewSemaphore(jobs)

		outcomes := make([]Outcome, len(specs))
		buffers := make([]bytes.Buffer, len(specs))
		dones := make([]chan struct{}, len(specs))
		for i := range specs {
			dones[i] = make(chan struct{})
		}

		for i, spec := range specs {
			go func() {
				defer close(dones[i])
				if err := sem.AcquireContext(ctx); err != nil {
					outcomes[i].Err = err
					return
				}
				defer sem.Release()
				spec.Output = &buffers[i]
				outcomes[i].Result, outcomes[i].Err = run(ctx, spec)
			}()
		}

		var writeErr error
		for i := range specs {
			<-dones[i]
			if writeErr != nil {
				continue
			}
			if _, err := buffers[i].WriteTo(output); err != nil {
				writeErr = wrap(err)
			}
		}

		return outcomes, writeErr
	}
}
