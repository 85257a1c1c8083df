package tapefiles

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tape/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type Open func(path string) *Store

func (Module) Open(
	logger logs.Logger,
) Open {
	return func(path string) *Store {
		return &Store{
			FilePath: path,
			Logger:   logger,
		}
	}
}
