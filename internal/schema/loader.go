package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/seedforge/seedforge/pkg/types"
)

//go:embed files/*.json
var builtinFiles embed.FS

// ErrTemplateNotFound is returned when a requested template name has no
// loaded definition. Callers treat it as fatal to that generation call.
var ErrTemplateNotFound = errors.New("template not found")

// SourceBuiltin marks templates compiled into the binary.
const SourceBuiltin = "builtin"

// Registry holds decoded templates keyed by name. Templates are loaded once
// and treated as immutable for the lifetime of the registry.
type Registry struct {
	templates map[string]*Template
	sources   map[string]string
	warnings  []string
}

// NewRegistry creates a registry preloaded with the embedded builtin
// templates (user, product, order).
func NewRegistry() (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template),
		sources:   make(map[string]string),
	}

	err := fs.WalkDir(builtinFiles, "files", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		data, err := builtinFiles.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read embedded template %s: %w", path, err)
		}
		if err := r.add(d.Name(), data, SourceBuiltin); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load builtin templates: %w", err)
	}

	return r, nil
}

// LoadDir loads every *.json template from dir. A missing directory is not
// an error; an unreadable or malformed file is.
func (r *Registry) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read templates directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path) // #nosec G304 - path from the configured templates dir
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}
		if err := r.add(entry.Name(), data, path); err != nil {
			return err
		}
	}
	return nil
}

// add parses and registers one template document.
func (r *Registry) add(filename string, data []byte, source string) error {
	var doc types.TemplateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", filename, err)
	}

	name := doc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filename), ".json")
	}

	if existing := r.foldName(name); existing != "" {
		return fmt.Errorf("duplicate template name %q (already loaded from %s)", name, r.sources[existing])
	}

	tpl, err := Decode(name, &doc)
	if err != nil {
		return err
	}

	r.templates[name] = tpl
	r.sources[name] = source

	for _, w := range Validate(tpl) {
		r.warnings = append(r.warnings, fmt.Sprintf("template %q: %s", name, w))
	}
	return nil
}

// Register adds an already-decoded template, for callers that build
// templates in code rather than loading them from files.
func (r *Registry) Register(tpl *Template) error {
	if tpl.Name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if existing := r.foldName(tpl.Name); existing != "" {
		return fmt.Errorf("duplicate template name %q (already loaded from %s)", tpl.Name, r.sources[existing])
	}
	r.templates[tpl.Name] = tpl
	r.sources[tpl.Name] = "registered"
	return nil
}

// Get returns the template registered under name. Lookup is exact first,
// then case-insensitive, so "User" still resolves to the builtin "user".
func (r *Registry) Get(name string) (*Template, error) {
	if id := r.foldName(name); id != "" {
		return r.templates[id], nil
	}
	return nil, fmt.Errorf("template %q: %w", name, ErrTemplateNotFound)
}

// foldName returns the registered name matching name exactly or under case
// folding, empty if none. Registration rejects case-folded duplicates, so at
// most one name can match.
func (r *Registry) foldName(name string) string {
	if _, ok := r.templates[name]; ok {
		return name
	}
	for id := range r.templates {
		if strings.EqualFold(id, name) {
			return id
		}
	}
	return ""
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source reports where a template was loaded from: SourceBuiltin or a file
// path.
func (r *Registry) Source(name string) string {
	return r.sources[name]
}

// Warnings returns the validation warnings collected while loading. They are
// advisory; a template with warnings still generates.
func (r *Registry) Warnings() []string {
	return r.warnings
}
