package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the relative paths of a report configuration.
// Relative entries are anchored at the directory holding the config file,
// so a run behaves the same regardless of the working directory.
type Paths struct {
	BaseDir string
}

// NewPaths returns Paths anchored at the directory of configFile
func NewPaths(configFile string) *Paths {
	return &Paths{BaseDir: filepath.Dir(configFile)}
}

// Resolve returns p unchanged when absolute, otherwise joined to BaseDir
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || p == nil || p.BaseDir == "" {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// ResolveAll resolves every path in the slice, preserving order
func (p *Paths) ResolveAll(paths []string) []string {
	if paths == nil {
		return nil
	}
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = p.Resolve(path)
	}
	return out
}

// EnsureParentDir creates the directory that will contain path
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
