package runs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/tape/logs"
	"github.com/reusee/tape/tapeconfigs"
)

type Module struct {
	dscope.Module
	Configs tapeconfigs.Module
	Logs    logs.Module
}
