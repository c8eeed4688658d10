package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlugin(t *testing.T, dir, name string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\necho test\n"), mode))
}

func TestFindPlugin(t *testing.T) {
	tmpDir := t.TempDir()
	writePlugin(t, tmpDir, "xiyandate-holidays", 0755)
	t.Setenv("PATH", tmpDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, err := FindPlugin("holidays")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "xiyandate-holidays"), found)

	_, err = FindPlugin("nonexistent")
	assert.ErrorContains(t, err, `"xiyandate-nonexistent" not found`)
}

func TestListPlugins(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writePlugin(t, first, "xiyandate-zodiac", 0755)
	writePlugin(t, first, "xiyandate-holidays", 0755)
	writePlugin(t, second, "xiyandate-holidays", 0755)
	writePlugin(t, second, "xiyandate-lunar", 0755)

	// Neither of these is a plugin.
	writePlugin(t, first, "not-a-plugin", 0755)
	writePlugin(t, first, "xiyandate-nonexec", 0644)
	require.NoError(t, os.Mkdir(filepath.Join(second, "xiyandate-dir"), 0755))

	t.Setenv("PATH", first+string(os.PathListSeparator)+second)

	found, err := ListPlugins()
	require.NoError(t, err)
	assert.Equal(t, []string{"holidays", "lunar", "zodiac"}, found)
}

func TestListPluginsEmptyPath(t *testing.T) {
	t.Setenv("PATH", "")

	plugins, err := ListPlugins()
	require.NoError(t, err)
	assert.Empty(t, plugins)
}

func TestExecutePluginMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	assert.Error(t, ExecutePlugin("missing", nil))
}
