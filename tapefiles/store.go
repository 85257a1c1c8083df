package tapefiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/reusee/e5"
	"github.com/reusee/tape/logs"
)

var ErrLocked = errors.New("state file locked")

var wrap = e5.Wrap.With(e5.WrapStacktrace)

type Store struct {
	FilePath string
	Logger   logs.Logger
}

func (s *Store) lockPath() string {
	return s.FilePath + ".lock"
}

// Lock creates the lock file exclusively. A leftover lock from a crashed session must be removed by hand.
func (s *Store) Lock() (unlock func(), err error) {
	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, s.lockPath())
		}
		return nil, wrap(err)
	}
	f.Close()
	return func() {
		if err := os.Remove(s.lockPath()); err != nil {
			s.Logger.Warn("remove lock file", "path", s.lockPath(), "error", err)
		}
	}, nil
}

// Load reads the state. A missing file gives an empty state.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.FilePath)
	if errors.Is(err, fs.ErrNotExist) {
		return new(State), nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.FilePath, err)
	}
	return &state, nil
}

func (s *Store) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return wrap(err)
	}
	// atomic write
	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return wrap(err)
	}
	if err := os.Rename(tmp, s.FilePath); err != nil {
		return wrap(err)
	}
	return nil
}

// Update holds the lock while fn mutates the loaded state. The state is saved only if fn succeeds.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	unlock, err := s.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	state, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	if err := s.Save(state); err != nil {
		return err
	}
	s.Logger.InfoContext(ctx, "state saved",
		"path", s.FilePath,
		"cells", len(state.Cells),
		"steps", state.Steps,
	)
	return nil
}
