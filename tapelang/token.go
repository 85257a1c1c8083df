package tapelang

type Kind uint8

const (
	Comment Kind = iota
	Increase
	Decrease
	MoveLeft
	MoveRight
	Input
	Output
	LoopBegin
	LoopEnd
)

// Token is one classified source character. Loop tokens carry no target; targets exist only on
// Instruction.
type Token struct {
	Kind   Kind
	Offset int
	Pos    Pos
}

func Classify(r rune) Kind {
	switch r {
	case '+':
		return Increase
	case '-':
		return Decrease
	case '<':
		return MoveLeft
	case '>':
		return MoveRight
	case ',':
		return Input
	case '.':
		return Output
	case '[':
		return LoopBegin
	case ']':
		return LoopEnd
	}
	return Comment
}

// Char returns the source character of an instruction kind, and 0 for Comment.
func (k Kind) Char() rune {
	switch k {
	case Increase:
		return '+'
	case Decrease:
		return '-'
	case MoveLeft:
		return '<'
	case MoveRight:
		return '>'
	case Input:
		return ','
	case Output:
		return '.'
	case LoopBegin:
		return '['
	case LoopEnd:
		return ']'
	}
	return 0
}

func (k Kind) String() string {
	switch k {
	case Comment:
		return "Comment"
	case Increase:
		return "Increase"
	case Decrease:
		return "Decrease"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case Input:
		return "Input"
	case Output:
		return "Output"
	case LoopBegin:
		return "LoopBegin"
	case LoopEnd:
		return "LoopEnd"
	}
	return "Invalid"
}

func (k Kind) IsLoop() bool {
	return k == LoopBegin || k == LoopEnd
}

// Coalescable reports whether adjacent runs of k may be folded into one instruction.
func (k Kind) Coalescable() bool {
	switch k {
	case Increase, Decrease, MoveLeft, MoveRight:
		return true
	}
	return false
}
