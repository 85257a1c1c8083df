package cmds

import (
	"errors"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var a int
	executor.Define("+a", Func(func() {
		a = 42
	}))
	executor.Define("a", Func(func(i int) {
		a = i
	}))

	if err := executor.Execute([]string{
		"+a",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 42 {
		t.Fatal()
	}

	if err := executor.Execute([]string{
		"a", "1",
	}); err != nil {
		t.Fatal(err)
	}
	if a != 1 {
		t.Fatal()
	}

	err := executor.Execute([]string{
		"foo",
	})
	if !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var bar, baz int
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
			bar = 1
		}),
		"baz": Func(func(i int) {
			baz = i
		}),
	}))

	if err := executor.Execute([]string{
		"foo",
		"bar",
		"baz", "42",
	}); err != nil {
		t.Fatal(err)
	}

	if bar != 1 {
		t.Fatal()
	}
	if baz != 42 {
		t.Fatal()
	}

}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	err := executor.Execute([]string{"foo", "42", "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatal()
	}
	if s != "foo" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo", "99"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 99 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

	err = executor.Execute([]string{"foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal()
	}
	if s != "" {
		t.Fatal()
	}

}

func TestAssignForm(t *testing.T) {
	executor := NewExecutor()
	var n int
	var on bool
	executor.Define("-n", Func(func(i int) {
		n = i
	}))
	executor.Define("-on", Func(func() {
		on = true
	}))

	if err := executor.Execute([]string{"-n=42"}); err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatalf("got %d", n)
	}

	// commands without arguments do not take the form
	err := executor.Execute([]string{"-on=true"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: -on=true") {
		t.Fatalf("got %v", err)
	}
	if on {
		t.Fatal()
	}
}

func TestArgErrorNamesCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("-n", Func(func(i int) {}))
	executor.Define("-fail", Func(func() error {
		return errors.New("boom")
	}))
	executor.Define("-ok", Func(func() error {
		return nil
	}))

	err := executor.Execute([]string{"-n", "x"})
	if err == nil || !strings.HasPrefix(err.Error(), "-n: convert x to int") {
		t.Fatalf("got %v", err)
	}
	err = executor.Execute([]string{"-n"})
	if err == nil || !strings.Contains(err.Error(), "-n: expecting argument") {
		t.Fatalf("got %v", err)
	}
	err = executor.Execute([]string{"-fail"})
	if err == nil || err.Error() != "-fail: boom" {
		t.Fatalf("got %v", err)
	}
	if err := executor.Execute([]string{"-ok"}); err != nil {
		t.Fatal(err)
	}
}

func TestFallback(t *testing.T) {
	executor := NewExecutor()
	var words []string
	executor.Fallback(Func(func(word string) {
		words = append(words, word)
	}))
	var v bool
	executor.Define("-v", Func(func() {
		v = true
	}))

	if err := executor.Execute([]string{"a.b", "-v", "c.b"}); err != nil {
		t.Fatal(err)
	}
	if !v || len(words) != 2 || words[0] != "a.b" || words[1] != "c.b" {
		t.Fatalf("got %v", words)
	}

	err := executor.Execute([]string{"-x"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: -x") {
		t.Fatalf("got %v", err)
	}
}

func TestFallbackArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	NewExecutor().Fallback(Func(func() {}))
}

func TestBoolArgument(t *testing.T) {
	executor := NewExecutor()
	var v bool
	executor.Define("-v", Func(func(b bool) {
		v = b
	}))
	if err := executor.Execute([]string{"-v", "yes"}); err != nil {
		t.Fatal(err)
	}
	if !v {
		t.Fatal()
	}
	if err := executor.Execute([]string{"-v=off"}); err != nil {
		t.Fatal(err)
	}
	if v {
		t.Fatal()
	}
	err := executor.Execute([]string{"-v", "maybe"})
	if err == nil || !strings.Contains(err.Error(), "not a boolean") {
		t.Fatalf("got %v", err)
	}
}
