package tapelang

import (
	"bufio"
	"io"
	"strings"
)

type Tokenizer struct {
	source *bufio.Reader
	src    *Source

	offset  int
	currPos Pos
}

func NewTokenizer(src *Source, r io.Reader) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(r),
		src:    src,
		currPos: Pos{
			Source: src,
			Line:   1,
			Column: 1,
		},
	}
}

// Next returns the token for the next character, or io.EOF.
func (t *Tokenizer) Next() (Token, error) {
	r, _, err := t.source.ReadRune()
	if err != nil {
		return Token{}, err
	}

	token := Token{
		Kind:   Classify(r),
		Offset: t.offset,
		Pos:    t.currPos,
	}

	t.offset++
	if r == '\n' {
		t.currPos.Line++
		t.currPos.Column = 1
	} else {
		t.currPos.Column++
	}

	return token, nil
}

func (t *Tokenizer) All() ([]Token, error) {
	var tokens []Token
	for {
		token, err := t.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
}

// Lex classifies every character of text. It never fails and never drops a character.
func Lex(text string) []Token {
	tokens, err := NewTokenizer(NewSource("", text), strings.NewReader(text)).All()
	if err != nil {
		// strings.Reader only returns io.EOF
		panic(err)
	}
	return tokens
}
