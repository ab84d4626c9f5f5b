package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load reads cfgName into out. An absolute cfgName is used as is; a relative
// one is tried against the working directory first and then searched for
// upward, so binaries started from a sub-directory still find configs/.
// onChange runs after every successful hot reload of the file.
func Load(cfgName string, out any, onChange func()) error {
	if out == nil {
		return errors.New("config target is nil")
	}
	if cfgName == "" {
		cfgName = defaultConfigRelPath
	}
	if filepath.IsAbs(cfgName) {
		return load(cfgName, out, onChange)
	}

	curDir, err := os.Getwd()
	if err != nil {
		return err
	}
	path, ok := findConfigUpward(curDir, cfgName)
	if !ok {
		return fmt.Errorf("config file not exist, searched %s from: %s", cfgName, curDir)
	}
	return load(path, out, onChange)
}

func findConfigUpward(startDir, relPath string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
