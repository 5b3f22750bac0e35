package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	apperrors "qareport/internal/errors"
)

// ReportConfig names the inputs and outputs of one report run
type ReportConfig struct {
	InputFiles  []string `json:"input_files" yaml:"input_files" validate:"required"`
	OutputPDF   string   `json:"output_pdf" yaml:"output_pdf" validate:"required"`
	OutputExcel string   `json:"output_excel" yaml:"output_excel" validate:"required"`

	// Optional extras
	OutputCSV   string `json:"output_csv,omitempty" yaml:"output_csv,omitempty"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

var reportValidator = newReportValidator()

func newReportValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// LoadReportConfig reads a JSON (or YAML, by extension) report configuration
// and resolves its relative paths against the file's directory.
func LoadReportConfig(path string) (*ReportConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err).
			WithContext("file", path)
	}

	cfg, err := ParseReportConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	paths := NewPaths(path)
	cfg.InputFiles = paths.ResolveAll(cfg.InputFiles)
	cfg.OutputPDF = paths.Resolve(cfg.OutputPDF)
	cfg.OutputExcel = paths.Resolve(cfg.OutputExcel)
	cfg.OutputCSV = paths.Resolve(cfg.OutputCSV)
	cfg.MetricsFile = paths.Resolve(cfg.MetricsFile)

	return cfg, nil
}

// ParseReportConfig decodes and validates report configuration bytes.
// ext selects the decoder: ".yaml" and ".yml" use YAML, anything else JSON.
func ParseReportConfig(data []byte, ext string) (*ReportConfig, error) {
	var cfg ReportConfig

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to decode YAML config", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to decode JSON config", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every required key is present
func (c *ReportConfig) Validate() error {
	err := reportValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewConfigError("config validation failed", err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperrors.NewMissingConfigKeyError(fe.Field())
		}
	}

	return apperrors.NewConfigError("config validation failed", err)
}
