package runs

import (
	"github.com/reusee/tape/tapeconfigs"
	"github.com/reusee/tape/tapevm"
)

type Config struct {
	// zero means unlimited
	StepLimit uint64
	TapeLimit int

	Coalesce   bool
	EOF        tapevm.EOFPolicy
	YieldEvery uint64
	Jobs       int
}

func (Module) Config(
	stepLimit tapeconfigs.StepLimit,
	tapeLimit tapeconfigs.TapeLimit,
	coalesce tapeconfigs.Coalesce,
	eof tapeconfigs.EOF,
	yieldEvery tapeconfigs.YieldEvery,
	jobs tapeconfigs.Jobs,
) Config {
	return Config{
		StepLimit:  uint64(stepLimit),
		TapeLimit:  int(tapeLimit),
		Coalesce:   bool(coalesce),
		EOF:        tapevm.EOFPolicy(eof),
		YieldEvery: uint64(yieldEvery),
		Jobs:       int(jobs),
	}
}
