package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths_Resolve(t *testing.T) {
	p := NewPaths(filepath.Join("configs", "config.json"))

	assert.Equal(t, filepath.Join("configs", "in.csv"), p.Resolve("in.csv"))
	assert.Equal(t, "/abs/in.csv", p.Resolve("/abs/in.csv"))
	assert.Equal(t, "", p.Resolve(""))
}

func TestPaths_ResolveCurrentDirectory(t *testing.T) {
	p := NewPaths("config.json")

	// filepath.Dir("config.json") is "." and Join cleans it away
	assert.Equal(t, "in.csv", p.Resolve("in.csv"))
}

func TestPaths_ResolveAll(t *testing.T) {
	p := &Paths{BaseDir: "base"}

	assert.Nil(t, p.ResolveAll(nil))
	assert.Equal(t,
		[]string{filepath.Join("base", "a.csv"), filepath.Join("base", "b.json")},
		p.ResolveAll([]string{"a.csv", "b.json"}))
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "deeper", "report.pdf")

	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, FileExists(filepath.Dir(target)))
	assert.False(t, FileExists(target))
}
