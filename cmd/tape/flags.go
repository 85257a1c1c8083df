package main

import (
	"path/filepath"

	"github.com/reusee/tape/cmds"
)

var filePaths []string

func addFiles(pattern string) {
	paths, err := filepath.Glob(pattern)
	if err != nil || len(paths) == 0 {
		// reported when opened
		filePaths = append(filePaths, pattern)
		return
	}
	filePaths = append(filePaths, paths...)
}

func init() {
	cmds.Define("-file", cmds.Func(addFiles).
		Args("pattern").
		Desc("run programs in matching files, repeatable"))
	cmds.Fallback(cmds.Func(addFiles).Args("pattern"))
}

var (
	inlines    = cmds.Collect[string]("-e", "run this program text, repeatable")
	inputPath  = cmds.Var[string]("-input", "read program input from this file")
	forceStdin = cmds.Switch("-stdin", "read program input from stdin even if it is a terminal")
	doDump     = cmds.Switch("-dump", "print the final tape to stderr")
	doDumpCode = cmds.Switch("-dump-code", "print the compiled instructions to stderr")
	statePath  = cmds.Var[string]("-state", "load the tape from and save it to this JSON file")
	doResume   = cmds.Switch("-resume", "continue the run a cap suspended in the -state file")
	doTap      = cmds.Switch("-tap", "open a starlark REPL over the final state")
	doRepl     = cmds.Switch("repl", "interactive session keeping the tape across lines")
	doCheck    = cmds.Switch("-check", "verify loop pairing of compiled programs before running")
)
