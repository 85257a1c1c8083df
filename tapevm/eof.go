package tapevm

import "fmt"

// EOFPolicy decides what an Input instruction does once the input reader is exhausted.
type EOFPolicy uint8

const (
	EOFZero EOFPolicy = iota
	EOFUnchanged
	EOFError
)

func (e EOFPolicy) String() string {
	switch e {
	case EOFZero:
		return "zero"
	case EOFUnchanged:
		return "unchanged"
	case EOFError:
		return "error"
	}
	return fmt.Sprintf("EOFPolicy(%d)", e)
}

func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch s {
	case "", "zero":
		return EOFZero, nil
	case "unchanged":
		return EOFUnchanged, nil
	case "error":
		return EOFError, nil
	}
	return 0, fmt.Errorf("unknown eof policy: %s", s)
}
