package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Discovery expands configured input entries into concrete file paths
type Discovery struct {
	accept func(path string) bool
	logger *slog.Logger
}

// NewDiscovery creates a discovery instance. accept decides which files a
// directory entry contributes; nil accepts every regular file.
func NewDiscovery(accept func(path string) bool) *Discovery {
	if accept == nil {
		accept = func(string) bool { return true }
	}
	return &Discovery{accept: accept, logger: slog.Default()}
}

// WithLogger sets the logger used for discovery warnings
func (d *Discovery) WithLogger(logger *slog.Logger) *Discovery {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// ExpandInputs resolves each entry in order:
//   - an existing file is kept verbatim, whatever characters its name holds
//   - an existing directory contributes its accepted files, sorted by name
//   - a glob pattern contributes its matches, sorted by name
//   - anything else is kept verbatim so the parser reports it
//
// Entries are never merged: a file listed twice is parsed twice.
func (d *Discovery) ExpandInputs(entries []string) ([]string, error) {
	var out []string

	for _, entry := range entries {
		info, statErr := os.Stat(entry)
		switch {
		case statErr == nil && info.IsDir():
			files, err := d.FindInputFiles(entry)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				out = append(out, f.Path)
			}
		case statErr == nil:
			out = append(out, entry)
		case isPattern(entry):
			matches, err := d.FindFilesByPattern(entry)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				d.logger.Warn("Input pattern matched no files", slog.String("pattern", entry))
			}
			for _, m := range matches {
				out = append(out, m.Path)
			}
		default:
			out = append(out, entry)
		}
	}

	return out, nil
}

// FindInputFiles lists the accepted regular files directly inside dir
func (d *Discovery) FindInputFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !d.accept(path) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    path,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sortByName(files)
	return files, nil
}

// FindFilesByPattern finds regular files matching a glob pattern
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}

		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sortByName(files)
	return files, nil
}

func sortByName(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
