package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Manager holds named filter presets, typically loaded from configuration
type Manager struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler *Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		filters:  make(map[string]*Filter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new preset or replaces an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return &PresetError{Name: name, Err: err}
	}

	m.mu.Lock()
	m.filters[strings.ToLower(name)] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers several presets. Nothing is registered if any
// of them fails to compile.
func (m *Manager) RegisterFilters(presets map[string]string) error {
	compiled := make(map[string]*Filter, len(presets))

	for _, name := range slices.Sorted(maps.Keys(presets)) {
		filter, err := m.compiler.Compile(presets[name])
		if err != nil {
			return &PresetError{Name: name, Err: err}
		}
		compiled[strings.ToLower(name)] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a preset by name. Names are case insensitive.
func (m *Manager) GetFilter(name string) (*Filter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[strings.ToLower(name)]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns the preset names in sorted order
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the preset called input, or compiles input as an
// expression when no preset has that name. A leading '@' forces a preset
// lookup.
func (m *Manager) Resolve(input string) (*Filter, error) {
	input = strings.TrimSpace(input)

	if name, ok := strings.CutPrefix(input, "@"); ok {
		if filter, exists := m.GetFilter(name); exists {
			return filter, nil
		}
		return nil, fmt.Errorf("filter preset '%s' not found", name)
	}

	if filter, exists := m.GetFilter(input); exists {
		return filter, nil
	}

	return m.compiler.Compile(input)
}
