package debugs

import (
	"github.com/reusee/tape/tapelang"
	"github.com/reusee/tape/tapevm"
)

// Globals exposes a finished or halted run to the tap.
// cell(i) reads a cell by its offset from the origin, so it keeps working after left growth.
func Globals(program *tapelang.Program, tape *tapevm.Tape, steps uint64) map[string]any {
	globals := map[string]any{
		"tape":   tape,
		"cursor": tape.Cursor() - tape.Origin(),
		"origin": tape.Origin(),
		"steps":  steps,
		"cell": func(i int) int {
			cells := tape.Cells()
			pos := tape.Origin() + i
			if pos < 0 || pos >= len(cells) {
				return 0
			}
			return int(cells[pos])
		},
	}
	if program != nil {
		code := make([]string, len(program.Code))
		for i, inst := range program.Code {
			code[i] = inst.String()
		}
		globals["program"] = program.Text()
		globals["code"] = code
	}
	return globals
}
