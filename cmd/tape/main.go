package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/tape/cmds"
	"github.com/reusee/tape/modes"
	"github.com/reusee/tape/runs"
	"github.com/reusee/tape/tapeconfigs"
	"golang.org/x/term"
)

const (
	exitOK     = 0
	exitError  = 1
	exitHalted = 3
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context) (code int) {
	var mode any = modes.ForProduction()
	if *doCheck {
		mode = modes.ForDevelopment()
	}
	scope := dscope.New(
		new(Module),
		mode,
	)

	scope.Call(func(
		check tapeconfigs.Check,
	) {
		if err := check(); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			code = exitError
		}
	})
	if code != exitOK {
		return
	}

	var specs []runs.Spec
	for _, path := range filePaths {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return exitError
		}
		defer f.Close()
		specs = append(specs, runs.Spec{
			Name:   path,
			Source: f,
		})
	}
	for i, text := range *inlines {
		specs = append(specs, runs.Spec{
			Name:   fmt.Sprintf("-e#%d", i+1),
			Source: strings.NewReader(text),
		})
	}

	input, closeInput, err := openInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitError
	}
	defer closeInput()

	invocation := Invocation{
		Specs:     specs,
		Input:     input,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Dump:      *doDump,
		DumpCode:  *doDumpCode,
		StatePath: *statePath,
		Resume:    *doResume,
		Tap:       *doTap,
	}

	scope.Call(func(
		execute Execute,
		repl REPL,
	) {
		if *doRepl {
			code = repl(ctx, invocation)
			return
		}
		if *doResume && *statePath == "" {
			fmt.Fprintf(os.Stderr, "-resume needs -state\n")
			code = exitError
			return
		}
		if len(specs) == 0 && !*doResume {
			fmt.Fprintf(os.Stderr, "no program given, use -file, -e or repl\n")
			cmds.GlobalExecutor.PrintUsage()
			code = exitError
			return
		}
		code = execute(ctx, invocation)
	})

	return
}

// openInput picks the program input: -input, then stdin when forced or piped.
// A nil reader makes Input instructions store zero.
func openInput() (io.Reader, func(), error) {
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if *forceStdin || !term.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stdin, func() {}, nil
	}
	return nil, func() {}, nil
}
