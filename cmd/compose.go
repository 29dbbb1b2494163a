package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/espalier/internal/config"
	"github.com/zjrosen/espalier/internal/flags"
	"github.com/zjrosen/espalier/internal/fragments"
	"github.com/zjrosen/espalier/internal/infrastructure/sqlite"
	"github.com/zjrosen/espalier/internal/log"
	"github.com/zjrosen/espalier/internal/menus"
	"github.com/zjrosen/espalier/internal/ordering"
	"github.com/zjrosen/espalier/internal/paths"
)

// openStore builds the configured ordering backend. The returned closer
// releases backend resources and flushes buffered writes; call it on every
// exit path. Pass freeze to disable recording (the order-freeze flag).
func openStore(cfg config.Config, freeze bool) (ordering.Store, func() error, error) {
	var (
		store  ordering.Store
		closer func() error
	)

	switch cfg.Ordering.Backend {
	case "memory":
		store = ordering.NewMemoryStore()
		closer = func() error { return nil }
	case "sqlite":
		db, err := sqlite.NewDB(cfg.ResolvedOrderingPath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening ordering database: %w", err)
		}
		store = db.OrderingRepository()
		closer = db.Close
	default: // file
		fs, err := ordering.NewFileStore(cfg.ResolvedOrderingPath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening orderings file: %w", err)
		}
		store = fs
		closer = fs.Flush
	}

	if freeze {
		store = ordering.Frozen(store)
	}
	return store, closer, nil
}

// seedStore applies the builtin layout seed and the config seeds. Only the
// assembling commands seed; the order maintenance commands see the store
// exactly as persisted. Seed failures degrade to log entries, an unseeded
// level just records its first-seen order instead.
func seedStore(cfg config.Config, store ordering.Store) {
	if err := menus.Seed().Apply(store); err != nil {
		log.ErrorErr(log.CatOrdering, "builtin seed failed", err)
	}
	if err := cfg.Ordering.Seed(menus.RootKey).Apply(store); err != nil {
		log.ErrorErr(log.CatOrdering, "config seed failed", err)
	}
}

// newService wires the assembly service for the active configuration.
// skipCache bypasses the fragment parse cache, for one-shot commands that
// read each file exactly once anyway.
func newService(cfg config.Config, store ordering.Store, tracer trace.Tracer, skipCache bool) *menus.Service {
	dir := cfg.ResolvedFragmentsDir()
	return menus.NewService(menus.Config{
		Loader:   fragments.NewLoader(os.DirFS(dir), skipCache),
		Builtins: menus.Builtins(activeConfigFile(), dir),
		Store:    store,
		Backend:  backendName(cfg),
		Tracer:   tracer,
	})
}

// newFlags builds the feature flag registry from the active configuration.
func newFlags(cfg config.Config) *flags.Registry {
	return flags.New(cfg.Flags)
}

func backendName(cfg config.Config) string {
	if cfg.Ordering.Backend == "" {
		return "file"
	}
	return cfg.Ordering.Backend
}

// activeConfigFile returns the config file the builtin Edit Config action
// should open: the one viper loaded, or where the first run would write it.
func activeConfigFile() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	return paths.DefaultConfigFile()
}
