package files

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qareport/internal/shared/testutil"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func csvOnly(path string) bool {
	return strings.HasSuffix(path, ".csv")
}

func TestNewDiscovery_NilAcceptsEverything(t *testing.T) {
	d := NewDiscovery(nil)
	require.NotNil(t, d)
	assert.True(t, d.accept("anything.txt"))
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.csv", "a.csv", "c.json", "notes.txt", "nested/d.csv", "suite/z.csv", "suite/y.csv", "suite/readme.md", "odd/run[1].csv", "odd/what?.csv")

	tests := []struct {
		name     string
		entries  []string
		expected []string
	}{
		{
			name:     "literal paths keep order",
			entries:  []string{filepath.Join(dir, "c.json"), filepath.Join(dir, "a.csv")},
			expected: []string{filepath.Join(dir, "c.json"), filepath.Join(dir, "a.csv")},
		},
		{
			name:     "missing literal path is kept",
			entries:  []string{filepath.Join(dir, "gone.csv")},
			expected: []string{filepath.Join(dir, "gone.csv")},
		},
		{
			name:     "glob matches sorted",
			entries:  []string{filepath.Join(dir, "*.csv")},
			expected: []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")},
		},
		{
			name:     "pattern with no match contributes nothing",
			entries:  []string{filepath.Join(dir, "*.xlsx")},
			expected: nil,
		},
		{
			name:     "directory contributes accepted files",
			entries:  []string{filepath.Join(dir, "suite")},
			expected: []string{filepath.Join(dir, "suite", "y.csv"), filepath.Join(dir, "suite", "z.csv")},
		},
		{
			name: "repeated entries are all kept",
			entries: []string{
				filepath.Join(dir, "b.csv"),
				filepath.Join(dir, "*.csv"),
				filepath.Join(dir, "b.csv"),
			},
			expected: []string{
				filepath.Join(dir, "b.csv"),
				filepath.Join(dir, "a.csv"),
				filepath.Join(dir, "b.csv"),
				filepath.Join(dir, "b.csv"),
			},
		},
		{
			name:     "existing file with glob characters is literal",
			entries:  []string{filepath.Join(dir, "odd", "run[1].csv"), filepath.Join(dir, "odd", "what?.csv")},
			expected: []string{filepath.Join(dir, "odd", "run[1].csv"), filepath.Join(dir, "odd", "what?.csv")},
		},
	}

	d := NewDiscovery(csvOnly)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ExpandInputs(tt.entries)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExpandInputs_PatternWarningUsesLogger(t *testing.T) {
	logger, logs := testutil.NewTestLogger()

	got, err := NewDiscovery(nil).WithLogger(logger).ExpandInputs([]string{filepath.Join(t.TempDir(), "*.csv")})
	require.NoError(t, err)
	assert.Empty(t, got)
	testutil.AssertLogged(t, logs, slog.LevelWarn, "matched no files")
}

func TestExpandInputs_InvalidPattern(t *testing.T) {
	_, err := NewDiscovery(nil).ExpandInputs([]string{"[bad"})
	assert.Error(t, err)
}

func TestFindInputFiles_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(nil).FindInputFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFindFilesByPattern_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "one.csv", "sub.csv/inner.csv")

	files, err := NewDiscovery(nil).FindFilesByPattern(filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "one.csv", files[0].Name)
	assert.False(t, files[0].IsDir)
}
