package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tape/debugs"
	"github.com/reusee/tape/runs"
	"github.com/reusee/tape/tapefiles"
)

type Module struct {
	dscope.Module
	Runs   runs.Module
	Debugs debugs.Module
	Files  tapefiles.Module
}
