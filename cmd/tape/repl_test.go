package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/tape/runs"
	"github.com/reusee/tape/tapefiles"
	"github.com/reusee/tape/tapevm"
)

func TestREPLSession(t *testing.T) {
	testScope(t, runs.Config{
		StepLimit: 100,
	}).Call(func(
		run runs.Run,
	) {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		var entries []tapefiles.RunEntry
		session := &replSession{
			run:    run,
			stdout: stdout,
			stderr: stderr,
			tape:   tapevm.NewTape(),
			record: func(entry tapefiles.RunEntry) {
				entries = append(entries, entry)
			},
		}

		lines := []string{
			"+++",
			"",
			">++ comment",
			":tape",
			"[",
			"<.",
			"+[]",
			":reset",
			":tape",
			":quit",
			"+++",
		}
		var i int
		session.loop(t.Context(), func() (string, error) {
			line := lines[i]
			i++
			return line, nil
		})

		if i != 10 {
			t.Fatalf("stopped at %d", i)
		}
		if stdout.String() != "[3 (2)]\n\x03[(0)]\n" {
			t.Fatalf("got %q", stdout.String())
		}
		errOut := stderr.String()
		if !strings.Contains(errOut, "unmatched [") || !strings.Contains(errOut, "step limit") {
			t.Fatalf("got %q", errOut)
		}
		if len(entries) != 5 {
			t.Fatalf("got %d", len(entries))
		}
		if entries[2].Error == "" || entries[4].Halt == "" {
			t.Fatalf("got %+v", entries)
		}
	})
}

func TestREPLFailedLineKeepsTape(t *testing.T) {
	testScope(t, runs.Config{
		EOF: tapevm.EOFError,
	}).Call(func(
		run runs.Run,
	) {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		session := &replSession{
			run:    run,
			input:  strings.NewReader(""),
			stdout: stdout,
			stderr: stderr,
			tape:   tapevm.NewTape(),
		}
		for _, line := range []string{"++", "+,", ":tape"} {
			if !session.exec(t.Context(), line) {
				t.Fatalf("stopped at %q", line)
			}
		}
		if stdout.String() != "[(2)]\n" {
			t.Fatalf("got %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "end of input") {
			t.Fatalf("got %q", stderr.String())
		}
	})
}
