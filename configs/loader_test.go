package configs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	var str string
	if err := loader.AssignFirst("str", &str); err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	if err := loader.AssignFirst("list", &list); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err := loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderValues(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	var files []string
	for value, err := range loader.Values("str") {
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, value.File)
	}
	if str := fmt.Sprintf("%v", files); str != "[testdata/test.cue testdata/test2.cue]" {
		t.Fatalf("got %q", str)
	}

	var strs []string
	for value, err := range loader.Values("str") {
		if err != nil {
			t.Fatal(err)
		}
		var str string
		if err := value.Decode(&str); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, str)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

	// list is only in the first file
	n := 0
	for range loader.Values("list") {
		n++
	}
	if n != 1 {
		t.Fatalf("got %d", n)
	}
}

func TestDecodeError(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	var n int
	err := loader.AssignFirst("str", &n)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("got %v", err)
	}
	if decodeErr.File != "testdata/test.cue" || decodeErr.Path != "str" {
		t.Fatalf("got %+v", decodeErr)
	}
	if !strings.HasPrefix(err.Error(), "testdata/test.cue: str: ") {
		t.Fatalf("got %v", err)
	}
}

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test2.cue", "testdata/test.cue"}, testSchema)

	str, err := First[string](loader, "str")
	if err != nil {
		t.Fatal(err)
	}
	if str != "foo" {
		t.Fatalf("got %v", str)
	}

	list, err := First[[]int](loader, "list")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %v", list)
	}

	n, err := First[int](loader, "missing")
	if err != nil || n != 0 {
		t.Fatalf("got %v %v", n, err)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	var str string
	if err := loader.AssignFirst("unknown_field", &str); err == nil {
		t.Fatal("should error")
	}
	err := loader.Validate()
	if err == nil || !strings.Contains(err.Error(), "validate testdata/bad.cue") {
		t.Fatalf("got %v", err)
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"testdata/none.cue"}, testSchema)
	if _, err := First[string](loader, "str"); err == nil {
		t.Fatal("should error")
	}
}

func TestEmptyLoader(t *testing.T) {
	var loader Loader
	str, err := First[string](loader, "str")
	if err != nil {
		t.Fatal(err)
	}
	if str != "" {
		t.Fatalf("got %q", str)
	}
	if len(loader.Files()) != 0 {
		t.Fatal()
	}

	loader = NewLoader(nil, testSchema)
	if err := loader.Validate(); err != nil {
		t.Fatal(err)
	}
}
