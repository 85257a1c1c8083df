package tapelang

import (
	"fmt"
	"io"
	"strings"
)

type ParseOptions struct {
	// Coalesce folds runs of identical arithmetic or move instructions into one instruction
	// with a repeat count.
	Coalesce bool
}

func Parse(src *Source, tokens []Token, opts ParseOptions) (*Program, error) {
	code := make([]Instruction, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind == Comment {
			continue
		}
		if opts.Coalesce && token.Kind.Coalescable() && len(code) > 0 {
			last := &code[len(code)-1]
			if last.Op == token.Kind {
				last.Repeat++
				continue
			}
		}
		code = append(code, Instruction{
			Op:     token.Kind,
			Repeat: 1,
			Offset: token.Offset,
			Pos:    token.Pos,
		})
	}

	var stack []int
	for i := range code {
		switch code[i].Op {
		case LoopBegin:
			stack = append(stack, i)
		case LoopEnd:
			if len(stack) == 0 {
				return nil, WithPos(ErrUnmatchedClose, code[i].Pos)
			}
			begin := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			code[begin].Target = i
			code[i].Target = begin
		}
	}
	if len(stack) > 0 {
		return nil, WithPos(ErrUnmatchedOpen, code[stack[0]].Pos)
	}

	return &Program{
		Source: src,
		Code:   code,
	}, nil
}

func Compile(name string, r io.Reader, opts ParseOptions) (*Program, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return CompileString(name, string(content), opts)
}

func CompileString(name string, text string, opts ParseOptions) (*Program, error) {
	src := NewSource(name, text)
	tokens, err := NewTokenizer(src, strings.NewReader(text)).All()
	if err != nil {
		return nil, err
	}
	return Parse(src, tokens, opts)
}
