package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EnvConfig names a configuration file that takes precedence over
// discovery.
const EnvConfig = "ERMINIA_CONFIG"

// Filenames are the names Discover looks for, in order.
var Filenames = []string{".erminia.yaml", ".erminia.yml", ".erminia.toml"}

// Discover loads the first configuration found in $ERMINIA_CONFIG, the
// working directory or the home directory. Without any file it returns the
// defaults.
func Discover() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	path, err := find(dirs)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func find(dirs []string) (string, error) {
	for _, dir := range dirs {
		for _, name := range Filenames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !os.IsNotExist(err) {
				return "", errors.Wrapf(err, "stat %s", candidate)
			}
		}
	}
	return "", nil
}
