package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModules(t *testing.T) {
	for _, test := range []struct {
		module   any
		mode     Mode
		expectT  bool
		modeName string
	}{
		{ForProduction(), ModeProduction, false, "production"},
		{ForDevelopment(), ModeDevelopment, false, "development"},
		{ForTest(t), ModeDevelopment, true, "development"},
	} {
		dscope.New(test.module).Call(func(
			mode Mode,
			gotT *testing.T,
		) {
			if mode != test.mode {
				t.Fatalf("got %v", mode)
			}
			if (gotT != nil) != test.expectT {
				t.Fatalf("got %v", gotT)
			}
			if mode.String() != test.modeName {
				t.Fatalf("got %s", mode)
			}
		})
	}
	if Mode(0).String() != "unknown" {
		t.Fatal()
	}
}
