// Package testutil provides fixture helpers for building fragment
// directories in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// rawFile holds a file written verbatim, bypassing the YAML encoder.
type rawFile struct {
	filename string
	content  string
}

// Builder accumulates fragment fixtures and writes them out as files.
type Builder struct {
	t         *testing.T
	dir       string
	fragments []fragmentData
	raw       []rawFile
}

// NewBuilder creates a builder that writes fixtures into dir.
func NewBuilder(t *testing.T, dir string) *Builder {
	t.Helper()
	return &Builder{t: t, dir: dir}
}

// WithFragment adds a fragment file holding the given top-level items.
func (b *Builder) WithFragment(filename string, items ...ItemData) *Builder {
	b.fragments = append(b.fragments, fragmentData{filename: filename, items: items})
	return b
}

// WithRawFile adds a file written byte-for-byte, for fixtures that must not
// round-trip through the YAML encoder (broken syntax, non-fragment files).
func (b *Builder) WithRawFile(filename, content string) *Builder {
	b.raw = append(b.raw, rawFile{filename: filename, content: content})
	return b
}

// Build writes all accumulated files into the directory.
func (b *Builder) Build() {
	b.t.Helper()
	for _, f := range b.fragments {
		b.writeFragment(f)
	}
	for _, f := range b.raw {
		b.write(f.filename, []byte(f.content))
	}
}

// Dir returns the directory fixtures are written into.
func (b *Builder) Dir() string { return b.dir }

func (b *Builder) writeFragment(f fragmentData) {
	b.t.Helper()
	data, err := yaml.Marshal(f.model())
	require.NoError(b.t, err)
	b.write(f.filename, data)
}

func (b *Builder) write(filename string, data []byte) {
	b.t.Helper()
	err := os.WriteFile(filepath.Join(b.dir, filename), data, 0o644)
	require.NoError(b.t, err)
}
