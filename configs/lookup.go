package configs

import (
	"errors"
	"fmt"
)

var ErrValueNotFound = errors.New("value not found")

type DecodeError struct {
	File string
	Path string
	Err  error
}

func (d *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", d.File, d.Path, d.Err)
}

func (d *DecodeError) Unwrap() error {
	return d.Err
}

// AssignFirst decodes the highest precedence value at path into target.
func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.Values(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}

// First decodes the first value at path. A missing value is not an error.
func First[T any](loader Loader, path string) (T, error) {
	var value T
	err := loader.AssignFirst(path, &value)
	if errors.Is(err, ErrValueNotFound) {
		err = nil
	}
	return value, err
}
