// Package paths resolves espalier's on-disk locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns espalier's configuration directory. XDG_CONFIG_HOME is
// honored; otherwise ~/.config/espalier. Empty when no home dir is available.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "espalier")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "espalier")
}

// DefaultConfigFile returns the default config file location.
func DefaultConfigFile() string {
	return underConfig("config.yaml")
}

// DefaultFragmentsDir returns the default fragments directory.
func DefaultFragmentsDir() string {
	return underConfig("fragments.d")
}

// DefaultOrderingsFile returns the default file-backed ordering store location.
func DefaultOrderingsFile() string {
	return underConfig("orderings.yaml")
}

// DefaultDBFile returns the default sqlite-backed ordering store location.
func DefaultDBFile() string {
	return underConfig("espalier.db")
}

// DefaultTracesFile returns the default path for trace file export.
func DefaultTracesFile() string {
	return underConfig("traces", "traces.jsonl")
}

func underConfig(elem ...string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(append([]string{dir}, elem...)...)
}

// ExpandHome replaces a leading ~ with the user's home directory. Paths like
// ~otheruser are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolveFragmentsDir resolves the fragments directory from user input.
//
// Input normalization:
//   - "" -> <config dir>/fragments.d
//   - "~/dotfiles/espalier" -> expanded, used directly
//   - "/path/to/project" (containing a fragments.d dir) -> "/path/to/project/fragments.d"
//
// Redirect handling: if the resolved directory contains a `redirect` file,
// its content names the real location. That lets setups that cannot use
// symlinks (some sync tools) point espalier at a managed dotfiles tree.
func ResolveFragmentsDir(path string) string {
	if path == "" {
		path = DefaultFragmentsDir()
		if path == "" {
			return ""
		}
	}
	path = filepath.Clean(ExpandHome(path))

	if filepath.Base(path) == "fragments.d" {
		return followRedirect(path)
	}

	sub := filepath.Join(path, "fragments.d")
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		return followRedirect(sub)
	}

	return followRedirect(path)
}

// followRedirect checks for a redirect file and follows it if present.
func followRedirect(dir string) string {
	content, err := os.ReadFile(filepath.Join(dir, "redirect")) //nolint:gosec // redirect path is within the fragments dir
	if err != nil {
		return dir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dir, target))
}
