package config

import (
	"fmt"
	"os"
)

// InitConfig writes a default configuration file at the default location.
// Returns the path written. Fails if the file already exists unless force
// is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a default configuration file to the given path.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
	}
	return SaveConfig(GetDefaultConfig(), path)
}
