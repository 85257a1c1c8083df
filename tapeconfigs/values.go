package tapeconfigs

import (
	"runtime"

	"github.com/reusee/tape/cmds"
	"github.com/reusee/tape/configs"
	"github.com/reusee/tape/tapevm"
	"github.com/reusee/tape/vars"
)

const DefaultYieldEvery = 1 << 16

type (
	StepLimit  uint64
	TapeLimit  int
	Coalesce   bool
	EOF        tapevm.EOFPolicy
	YieldEvery uint64
	Jobs       int
)

var (
	stepLimitFlag  = cmds.Var[uint64]("-steps", "halt after this many executed instructions")
	tapeLimitFlag  = cmds.Var[int]("-tape-limit", "halt once the tape holds more cells than this, checked every -yield-every steps and at the end")
	eofFlag        = cmds.Var[string]("-eof", "input exhausted policy: zero, unchanged or error")
	yieldEveryFlag = cmds.Var[uint64]("-yield-every", "instructions between limit checks")
	jobsFlag       = cmds.Var[int]("-jobs", "programs to run concurrently")
)

// nil when not given on the command line
var coalesceFlag *bool

func setCoalesce(v bool) {
	coalesceFlag = &v
}

func init() {
	cmds.Define("-coalesce", cmds.Func(func() {
		setCoalesce(true)
	}).Desc("fold runs of + - < > into single instructions"))
	cmds.Define("-no-coalesce", cmds.Func(func() {
		setCoalesce(false)
	}).Desc("do not fold runs, overriding the config file"))
}

// Check validates the config files and flag values. Providers below assume it passed.
type Check func() error

func (Module) Check(
	loader configs.Loader,
) Check {
	return func() error {
		if err := loader.Validate(); err != nil {
			return err
		}
		if _, err := loadEOF(loader); err != nil {
			return err
		}
		return nil
	}
}

func first[T any](loader configs.Loader, path string) T {
	value, err := configs.First[T](loader, path)
	if err != nil {
		panic(err)
	}
	return value
}

func (Module) StepLimit(
	loader configs.Loader,
) StepLimit {
	return StepLimit(vars.FirstNonZero(
		*stepLimitFlag,
		first[uint64](loader, "step_limit"),
	))
}

func (Module) TapeLimit(
	loader configs.Loader,
) TapeLimit {
	return TapeLimit(vars.FirstNonZero(
		*tapeLimitFlag,
		first[int](loader, "tape_limit"),
	))
}

func (Module) Coalesce(
	loader configs.Loader,
) Coalesce {
	if coalesceFlag != nil {
		return Coalesce(*coalesceFlag)
	}
	return Coalesce(first[bool](loader, "coalesce"))
}

func loadEOF(loader configs.Loader) (tapevm.EOFPolicy, error) {
	name := *eofFlag
	if name == "" {
		var err error
		name, err = configs.First[string](loader, "eof")
		if err != nil {
			return 0, err
		}
	}
	return tapevm.ParseEOFPolicy(name)
}

func (Module) EOF(
	loader configs.Loader,
) EOF {
	policy, err := loadEOF(loader)
	if err != nil {
		panic(err)
	}
	return EOF(policy)
}

func (Module) YieldEvery(
	loader configs.Loader,
) YieldEvery {
	return YieldEvery(vars.FirstNonZero(
		*yieldEveryFlag,
		first[uint64](loader, "yield_every"),
		DefaultYieldEvery,
	))
}

func (Module) Jobs(
	loader configs.Loader,
) Jobs {
	return Jobs(vars.FirstNonZero(
		*jobsFlag,
		first[int](loader, "jobs"),
		runtime.NumCPU(),
	))
}
