// Package plugin runs external xiyandate-* executables as subcommands.
package plugin

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Prefix names plugin executables: "xiyandate-holidays" serves "xiyandate holidays".
const Prefix = "xiyandate-"

// FindPlugin looks up the executable serving the subcommand name in PATH.
func FindPlugin(name string) (string, error) {
	path, err := exec.LookPath(Prefix + name)
	if err != nil {
		return "", errors.Errorf("plugin %q not found in PATH", Prefix+name)
	}
	return path, nil
}

// ExecutePlugin runs the plugin for name with args, attached to the
// current standard streams.
func ExecutePlugin(name string, args []string) error {
	pluginPath, err := FindPlugin(name)
	if err != nil {
		return err
	}

	cmd := exec.Command(pluginPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	return errors.Wrapf(cmd.Run(), "plugin %s", name)
}

// ListPlugins returns the sorted subcommand names of all executable plugins in PATH.
func ListPlugins() ([]string, error) {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	for _, dir := range filepath.SplitList(pathEnv) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasPrefix(name, Prefix) || name == Prefix {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || info.Mode()&0111 == 0 {
				continue
			}
			seen[strings.TrimPrefix(name, Prefix)] = true
		}
	}

	result := make([]string, 0, len(seen))
	for p := range seen {
		result = append(result, p)
	}
	sort.Strings(result)
	return result, nil
}
