package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed catalog/*.yaml
var builtinCatalog embed.FS

// Registry holds the built-in scenarios that can be played without a lesson record.
type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]Script
}

func NewRegistry() *Registry {
	return &Registry{scenarios: make(map[string]Script)}
}

// NewBuiltinRegistry returns a registry seeded with the embedded catalog.
func NewBuiltinRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadFromFS(builtinCatalog, "catalog"); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFromFS loads every .yaml/.yml file in dir. The key defaults to the file name.
func (r *Registry) LoadFromFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read scenario directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read scenario file %s: %w", name, err)
		}
		script, err := DecodeYAML(data)
		if err != nil {
			return fmt.Errorf("failed to load scenario %s: %w", name, err)
		}
		if script.Key == "" {
			script.Key = strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		}
		r.Add(script)
	}
	return nil
}

func (r *Registry) Add(s Script) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[s.Key] = s
}

func (r *Registry) Get(key string) (Script, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scenarios[key]
	return s, ok
}

// List returns the scenarios sorted by key.
func (r *Registry) List() []Script {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Script, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Key < list[j].Key })
	return list
}
