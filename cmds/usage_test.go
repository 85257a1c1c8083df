package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func(n int, s *string) {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()

	for _, expected := range []string{
		"-h, help, -help, --help",
		"foo",
		"  bar",
		"  baz",
		"    qux <int> [string]",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("missing %q in:\n%s", expected, out)
		}
	}
	if strings.Count(out, "print this usage") != 1 {
		t.Fatalf("aliases listed twice:\n%s", out)
	}
}

func TestUsageArgNames(t *testing.T) {
	executor := NewExecutor()
	executor.Define("-file", Func(func(path string) {}).Args("path").Desc("FILE"))
	executor.Define("-limit", Func(func(n *int) {}).Args("n"))
	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()
	for _, expected := range []string{
		"-file <path>",
		"-limit [n]",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("missing %q in:\n%s", expected, out)
		}
	}
}
