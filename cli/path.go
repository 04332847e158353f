package cli

import (
	"path/filepath"

	"github.com/ardnew/bulba/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// configFile returns the path of the configuration file with the given
// extension.
func configFile(ext string) string {
	return configPath(baseConfig + ext)
}
