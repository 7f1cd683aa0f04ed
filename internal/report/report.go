// Package report renders validation results for humans and machines. It
// follows a renderer registry: each output format registers itself and the
// CLI looks formats up by name. Renderers never influence validation; they
// consume a finished session result.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/GooferByte/OfsaaValidator/internal/reader"
	"github.com/GooferByte/OfsaaValidator/internal/schema"
	"github.com/GooferByte/OfsaaValidator/internal/session"
)

// Input bundles everything a renderer may need.
type Input struct {
	Table    *schema.Table
	Metadata reader.Metadata
	Rows     [][]string
	Result   *session.Result
}

// Renderer writes a validation result to a single stream.
type Renderer interface {
	// Name returns the format name (e.g. "console", "json").
	Name() string

	// Render writes the result to w.
	Render(in Input, w io.Writer) error
}

// DirectoryRenderer extends Renderer for formats that produce a directory
// of files (e.g. valid/rejected record extracts) instead of a single stream.
type DirectoryRenderer interface {
	Renderer
	RenderDir(in Input, dir string) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Renderer)
)

// Register adds a renderer to the global registry.
func Register(r Renderer) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Name()] = r
}

// Get returns the renderer with the given name, or an error listing the
// registered formats.
func Get(name string) (Renderer, error) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, strings.Join(names(), ", "))
	}
	return r, nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
