package configs

import (
	"fmt"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader answers path lookups over a list of CUE files. Earlier files take precedence.
// The zero Loader has no files.
type Loader struct {
	files    []string
	getRoots func() ([]root, error)
}

type root struct {
	value cue.Value
	file  string
}

// NewLoader returns a Loader over files. Files are read and validated against the closed
// schema on first use.
func NewLoader(files []string, schemaSrc string) Loader {
	return Loader{
		files: files,
		getRoots: sync.OnceValues(func() ([]root, error) {
			return loadRoots(files, schemaSrc)
		}),
	}
}

func loadRoots(files []string, schemaSrc string) (ret []root, err error) {
	// schema and files must share one runtime to be unified
	ctx := cuecontext.New()

	var schema cue.Value
	if schemaSrc != "" {
		schema = ctx.CompileString("close({" + schemaSrc + "})")
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("compile schema: %w", err)
		}
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		value := ctx.CompileBytes(content, cue.Filename(file))
		if err := value.Err(); err != nil {
			return nil, err
		}
		if schema.Exists() {
			if err := schema.Unify(value).Validate(); err != nil {
				return nil, fmt.Errorf("validate %s: %w", file, err)
			}
		}
		ret = append(ret, root{
			value: value,
			file:  file,
		})
	}

	return
}

func (l Loader) Files() []string {
	return l.files
}

// Validate loads and checks every file.
func (l Loader) Validate() error {
	if l.getRoots == nil {
		return nil
	}
	_, err := l.getRoots()
	return err
}

// Value is a config value and the file it came from.
type Value struct {
	cue.Value
	File string
	Path string
}

func (v Value) Decode(target any) error {
	if err := v.Value.Decode(target); err != nil {
		return &DecodeError{
			File: v.File,
			Path: v.Path,
			Err:  err,
		}
	}
	return nil
}

// Values yields the value at path from every file defining it, in precedence order.
func (l Loader) Values(path string) iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		if l.getRoots == nil {
			return
		}
		roots, err := l.getRoots()
		if err != nil {
			yield(Value{}, err)
			return
		}

		cuePath := cue.ParsePath(path)
		if err := cuePath.Err(); err != nil {
			yield(Value{}, fmt.Errorf("bad path %q: %w", path, err))
			return
		}
		for _, r := range roots {
			value := r.value.LookupPath(cuePath)
			if !value.Exists() {
				continue
			}
			if !yield(Value{
				Value: value,
				File:  r.file,
				Path:  path,
			}, nil) {
				return
			}
		}
	}
}
