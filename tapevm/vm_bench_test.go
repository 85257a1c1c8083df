package tapevm

import (
	"io"
	"testing"
)

const benchProgram = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func BenchmarkVM_Run(b *testing.B) {
	program := compile(b, benchProgram, false)
	b.ResetTimer()
	for range b.N {
		vm := NewVM(program)
		vm.Output = io.Discard
		for _, err := range vm.Run {
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkVM_RunCoalesced(b *testing.B) {
	program := compile(b, benchProgram, true)
	b.ResetTimer()
	for range b.N {
		vm := NewVM(program)
		for _, err := range vm.Run {
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
