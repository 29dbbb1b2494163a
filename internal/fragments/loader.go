package fragments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/espalier/internal/cachemanager"
	"github.com/zjrosen/espalier/internal/log"
)

// Loader discovers *.yaml and *.yml files in one fragments directory and
// parses them through a read-through cache keyed by name and mtime, so
// unchanged files skip re-parsing across reloads.
type Loader struct {
	fsys  fs.FS
	cache *cachemanager.ReadThroughCache[string, *File, string]
}

// NewLoader creates a loader over fsys, the fragments directory. skipCache
// disables the parse cache; `watch` uses that since every event implies a
// changed file anyway.
func NewLoader(fsys fs.FS, skipCache bool) *Loader {
	l := &Loader{fsys: fsys}
	manager := cachemanager.NewInMemoryCacheManager[string, *File](
		"fragment-parse",
		cachemanager.DefaultExpiration,
		cachemanager.DefaultCleanupInterval,
	)
	l.cache = cachemanager.NewReadThroughCache[string, *File, string](manager, l.parse, skipCache)
	return l
}

// Load parses every fragment file in lexical filename order. It is
// best-effort: files that fail to parse or validate are skipped and their
// errors joined, so one broken fragment never takes down the menu. A missing
// fragments directory is an empty load, not an error.
func (l *Loader) Load(ctx context.Context) ([]*File, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fragments directory: %w", err)
	}

	var files []*File
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !isFragment(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", entry.Name(), err))
			continue
		}
		// mtime in the key makes an edited file a cache miss.
		key := fmt.Sprintf("%s|%d", entry.Name(), info.ModTime().UnixNano())
		f, err := l.cache.Get(ctx, key, entry.Name(), cachemanager.DefaultExpiration)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, f)
	}

	log.Debug(log.CatFragments, "fragments loaded", "count", len(files), "failed", len(errs))
	return files, errors.Join(errs...)
}

// parse reads and decodes one fragment file. The returned File carries its
// path and a name defaulted from the file name.
func (l *Loader) parse(_ context.Context, name string) (*File, error) {
	content, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	f, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("fragment %s: %w", name, err)
	}
	f.Path = name
	if f.Name == "" {
		f.Name = strings.TrimSuffix(name, path.Ext(name))
	}
	return f, nil
}

// Parse decodes and validates a single fragment document. Unknown keys are
// rejected so typos surface instead of silently dropping entries. An empty
// document is a valid, empty fragment.
func Parse(content []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func isFragment(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
