package tapeconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/tape/cmds"
	"github.com/reusee/tape/configs"
	"github.com/reusee/tape/logs"
)

//go:embed schema.cue
var Schema string

var configFlag = cmds.Var[string]("-config", "load this config file before the default locations")

var filenames = []string{
	"tape.cue",
	".tape.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	// explicit
	if *configFlag != "" {
		paths = append(paths, *configFlag)
	}

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, existing(workingDir)...)
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, existing(filepath.Join(configDir, "tape"))...)
	}

	// system wide dir
	paths = append(paths, existing("/etc")...)

	return configs.NewLoader(paths, Schema)
}

func existing(dir string) (ret []string) {
	for _, filename := range filenames {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			ret = append(ret, path)
		}
	}
	return
}
