package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/tape/runs"
	"github.com/reusee/tape/tapefiles"
	"github.com/reusee/tape/tapevm"
)

// REPL runs each line as a program on one tape kept across lines.
type REPL func(ctx context.Context, inv Invocation) int

func (Module) REPL(
	run runs.Run,
	open tapefiles.Open,
) REPL {
	return func(ctx context.Context, inv Invocation) int {
		var historyFile string
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".tape_history")
		}
		rl, err := readline.NewEx(&readline.Config{
			Prompt:      "tape> ",
			HistoryFile: historyFile,
		})
		if err != nil {
			fmt.Fprintf(inv.Stderr, "error: %v\n", err)
			return exitError
		}
		defer rl.Close()

		session := &replSession{
			run:    run,
			input:  inv.Input,
			stdout: rl.Stdout(),
			stderr: rl.Stderr(),
		}
		readLine := func() (string, error) {
			return rl.Readline()
		}

		if inv.StatePath == "" {
			session.tape = tapevm.NewTape()
			session.loop(ctx, readLine)
			return exitOK
		}

		if err := open(inv.StatePath).Update(ctx, func(state *tapefiles.State) error {
			session.tape, err = state.Tape()
			if err != nil {
				return err
			}
			session.record = func(entry tapefiles.RunEntry) {
				state.Record(session.tape, entry)
			}
			session.loop(ctx, readLine)
			return nil
		}); err != nil {
			fmt.Fprintf(inv.Stderr, "state: %v\n", err)
			return exitError
		}
		return exitOK
	}
}

type replSession struct {
	run    runs.Run
	input  io.Reader
	stdout io.Writer
	stderr io.Writer
	tape   *tapevm.Tape
	record func(tapefiles.RunEntry)
	count  int
}

func (s *replSession) loop(ctx context.Context, readLine func() (string, error)) {
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := readLine()
		if err != nil { // Ctrl-C or Ctrl-D
			return
		}
		if !s.exec(ctx, line) {
			return
		}
	}
}

// exec handles one line and reports whether the session continues.
func (s *replSession) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case ":quit", ":q":
		return false
	case ":tape":
		fmt.Fprintf(s.stdout, "%v\n", s.tape)
		return true
	case ":reset":
		s.tape = tapevm.NewTape()
		return true
	}

	s.count++
	result, err := s.run(ctx, runs.Spec{
		Name:   fmt.Sprintf("line %d", s.count),
		Source: strings.NewReader(line),
		Input:  s.input,
		Output: s.stdout,
		// a failed line leaves the session tape untouched
		Tape: s.tape.Clone(),
	})
	outcome := runs.Outcome{
		Result: result,
		Err:    err,
	}
	if err != nil {
		fmt.Fprintf(s.stderr, "%v\n", err)
		if errors.Is(err, context.Canceled) {
			return false
		}
	} else {
		s.tape = result.Tape
		if result.Halt != nil {
			fmt.Fprintf(s.stderr, "%v\n", result.Halt)
		}
	}
	if s.record != nil {
		s.record(runEntry(outcome))
	}
	return true
}
