package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"qareport/internal/config"
	apperrors "qareport/internal/errors"
)

// FileValidator checks report output locations before any work is done
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err).
			WithContext("directory", dir)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err).
			WithContext("directory", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputFile checks that path can be written as a report file:
// its directory is usable and the path itself is not a directory.
func (v *FileValidator) ValidateOutputFile(path string) error {
	if err := v.ValidateOutputDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		v.logger.Error("Output path is a directory",
			slog.String("path", path))
		return apperrors.NewStorageError(fmt.Sprintf("output path %s is a directory", path), nil).
			WithContext("file", path)
	}

	return nil
}

// ValidateOutputs validates every non-empty output path and rejects
// configurations where two outputs collide or an output would overwrite
// one of the inputs.
func (v *FileValidator) ValidateOutputs(inputs []string, outputs ...string) error {
	claimed := make(map[string]string, len(inputs)+len(outputs))
	for _, in := range inputs {
		claimed[cleanKey(in)] = "input"
	}

	for _, out := range outputs {
		if out == "" {
			continue
		}

		key := cleanKey(out)
		if owner, exists := claimed[key]; exists {
			v.logger.Error("Output path collides with another path",
				slog.String("file", out),
				slog.String("collides_with", owner))
			return apperrors.NewConfigError(fmt.Sprintf("output %s collides with an %s path", out, owner), nil).
				WithContext("file", out)
		}
		claimed[key] = "output"

		if err := v.ValidateOutputFile(out); err != nil {
			return err
		}
	}

	v.logger.Info("Output paths validated",
		slog.Int("outputs", len(claimed)-len(inputs)))
	return nil
}

func cleanKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
