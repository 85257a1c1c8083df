package tapelang

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnmatchedOpen  = errors.New("unmatched [")
	ErrUnmatchedClose = errors.New("unmatched ]")
)

type PosError struct {
	Err error
	Pos Pos
}

func (p PosError) Error() string {
	if p.Pos.Source == nil {
		return fmt.Sprintf("%s at %d:%d", p.Err.Error(), p.Pos.Line, p.Pos.Column)
	}

	var sb strings.Builder
	name := p.Pos.Source.Name
	if name == "" {
		name = "<input>"
	}
	sb.WriteString(fmt.Sprintf("%s at %s:%d:%d\n", p.Err.Error(), name, p.Pos.Line, p.Pos.Column))

	lines := p.Pos.Source.Lines
	idx := p.Pos.Line - 1
	if idx >= 0 && idx < len(lines) {
		line := lines[idx]
		sb.WriteString(line)
		sb.WriteString("\n")

		col := p.Pos.Column - 1
		for i, r := range []rune(line) {
			if i >= col {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

func WithPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(PosError); ok {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}
