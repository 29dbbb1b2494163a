// Package config provides configuration types, defaults, and persistence for
// espalier.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/ordering"
	"github.com/zjrosen/espalier/internal/paths"
	"github.com/zjrosen/espalier/internal/tracing"
)

// Config holds all configuration options for espalier.
type Config struct {
	FragmentsDir string          `mapstructure:"fragments_dir"`
	AutoReload   bool            `mapstructure:"auto_reload"`
	DebounceMs   int             `mapstructure:"debounce_ms"`
	UI           UIConfig        `mapstructure:"ui"`
	Theme        ThemeConfig     `mapstructure:"theme"`
	Ordering     OrderingConfig  `mapstructure:"ordering"`
	Tracing      tracing.Config  `mapstructure:"tracing"`
	Flags        map[string]bool `mapstructure:"flags"`

	// Keys overrides default keybindings. Maps a lowercase binding name
	// ("up", "select", "quit", ...) to its replacement keys; unknown names
	// fall back to the defaults.
	Keys map[string][]string `mapstructure:"keys"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar    bool   `mapstructure:"show_status_bar"`
	ShowDescriptions bool   `mapstructure:"show_descriptions"` // open the detail pane on start
	MarkdownStyle    string `mapstructure:"markdown_style"`    // "dark" (default) or "light"
	Mouse            bool   `mapstructure:"mouse"`             // click-to-select in the menu
}

// OrderingConfig selects and locates the ordering store.
type OrderingConfig struct {
	Backend string       `mapstructure:"backend"` // "file" (default), "sqlite", or "memory"
	Path    string       `mapstructure:"path"`    // store location; defaults under the config dir
	Seeds   []SeedConfig `mapstructure:"seeds"`
}

// SeedConfig pins a starting order for one menu level. Seeds only apply to
// levels the store has never seen; a recorded order always wins.
type SeedConfig struct {
	Path  string   `mapstructure:"path"`  // menu path, "" for the top level
	Names []string `mapstructure:"names"` // child names in the desired order
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// ResolvedFragmentsDir returns the fragments directory after normalization,
// falling back to <config dir>/fragments.d.
func (c Config) ResolvedFragmentsDir() string {
	return paths.ResolveFragmentsDir(c.FragmentsDir)
}

// ResolvedOrderingPath returns the ordering store location for the configured
// backend, defaulting under the config dir. Meaningless for "memory".
func (c Config) ResolvedOrderingPath() string {
	if c.Ordering.Path != "" {
		return paths.ExpandHome(c.Ordering.Path)
	}
	if c.Ordering.Backend == "sqlite" {
		return paths.DefaultDBFile()
	}
	return paths.DefaultOrderingsFile()
}

// Debounce returns the reload debounce window, with a floor default for
// unset or nonsense values.
func (c Config) Debounce() time.Duration {
	if c.DebounceMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Seed converts the configured seeds into an ordering seed for rootKey.
func (o OrderingConfig) Seed(rootKey string) ordering.Seed {
	entries := make([]ordering.SeedEntry, 0, len(o.Seeds))
	for _, s := range o.Seeds {
		entries = append(entries, ordering.SeedEntry{Path: s.Path, Names: s.Names})
	}
	return ordering.Seed{RootKey: rootKey, Entries: entries}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		DebounceMs: 250,
		UI: UIConfig{
			ShowStatusBar:    true,
			ShowDescriptions: false,
			MarkdownStyle:    "dark",
			Mouse:            true,
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Ordering: OrderingConfig{
			Backend: "file",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateOrdering(cfg.Ordering); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateUI checks user interface configuration for errors.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateOrdering checks ordering store configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateOrdering(o OrderingConfig) error {
	switch o.Backend {
	case "", "file", "sqlite", "memory":
		// Valid
	default:
		return fmt.Errorf("ordering.backend must be \"file\", \"sqlite\", or \"memory\", got %q", o.Backend)
	}

	if o.Backend == "memory" && o.Path != "" {
		return fmt.Errorf("ordering.path has no effect with the memory backend")
	}

	return ValidateSeeds(o.Seeds)
}

// ValidateSeeds checks seed entries for errors.
// Returns nil if seeds are valid or empty.
func ValidateSeeds(seeds []SeedConfig) error {
	for i, seed := range seeds {
		if len(seed.Names) == 0 {
			return fmt.Errorf("ordering.seeds[%d]: names is required", i)
		}
		seen := make(map[string]struct{}, len(seed.Names))
		for _, name := range seed.Names {
			if name == "" {
				return fmt.Errorf("ordering.seeds[%d]: empty name", i)
			}
			if _, ok := seen[name]; ok {
				return fmt.Errorf("ordering.seeds[%d]: duplicate name %q", i, name)
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// FilePath for the file exporter is derived from the config dir at
	// runtime when unset, so only the otlp endpoint has a hard requirement.
	if tc.Enabled && tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Espalier Configuration

# Directory holding menu fragments (default: ~/.config/espalier/fragments.d)
# Every *.yaml / *.yml file in it contributes items to the menu.
# fragments_dir: ~/dotfiles/espalier

# Re-assemble the menu when fragment files change
auto_reload: true

# Quiet window after a file event before reloading, in milliseconds
# debounce_ms: 250

# UI settings
ui:
  show_status_bar: true     # Show status bar at bottom
  show_descriptions: false  # Open the detail pane on start
  # markdown_style: dark    # Description rendering style: "dark" (default) or "light"
  mouse: true               # Click to select menu entries

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default espalier theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"

# Ordering store - remembers the first-seen order of every menu level so the
# menu never reshuffles under you. Delete an entry (or run 'espalier order:reset')
# to let hints re-place items.
ordering:
  # Backend: file (default), sqlite, or memory (nothing persisted)
  backend: file

  # Store location (defaults under the config dir)
  # path: ~/.config/espalier/orderings.yaml

  # Seed starting orders for levels the store has not seen yet.
  # seeds:
  #   - path: ""
  #     names: [Project, Tools, Help]
  #   - path: "Tools"
  #     names: [Docker, Kubernetes]

# Fragment file schema (one YAML document per file):
#
#   name: git                  # optional fragment name (defaults to file name)
#   items:
#     - at: "Project"          # parent path, "" or absent for top level
#       name: Git              # item name (path segment)
#       items:                 # child items make this a group
#         - name: Status
#           exec: git status -sb
#           description: |     # optional markdown, shown in the detail pane
#             Working tree summary
#
# Placement hints (first sight only; the recorded order wins afterwards):
#   before: Help     # insert immediately before a sibling
#   after: Docker    # insert immediately after a sibling
#   begin: true      # float to the front of the level
#   end: true        # sink to the back of the level
#
# Group ordering:
#   ordering: weak      # default: merge and remember order
#   ordering: strong    # authored order is final; never recorded
#   ordering: anonymous # children merge into the parent level

# Keybinding overrides. Each entry replaces the default keys for one binding.
# Binding names: up, down, collapse, expand, top, bottom, page_up, page_down,
# select, reload, filter, details, yank, fold_all, help, escape, quit, toggle_status
# keys:
#   quit: [q, ctrl+c]
#   select: [enter, space]

# Distributed tracing for menu assembly (mostly for debugging espalier itself)
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/espalier/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Feature flags
# flags:
#   exec-in-place: false   # run the selected command instead of printing it
#   order-freeze: false    # stop recording newly seen items
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
