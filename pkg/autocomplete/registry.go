package autocomplete

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores field types by name. It is filled during application start
// and sealed before serving; lookups are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]FieldType
	sealed bool
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]FieldType)}
}

// Register validates and stores a field type. Duplicate names, invalid
// declarations and registration after Seal return an error.
func (r *Registry) Register(field FieldType) error {
	if r == nil {
		return fmt.Errorf("autocomplete: registry is nil")
	}
	field.Name = strings.TrimSpace(field.Name)
	if err := field.Validate(); err != nil {
		return err
	}
	field = cloneFieldType(field)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrRegistrySealed, field.Name)
	}
	if r.types == nil {
		r.types = make(map[string]FieldType)
	}
	if _, exists := r.types[field.Name]; exists {
		return fmt.Errorf("%w: field type %q already registered", ErrInvalidFieldConfiguration, field.Name)
	}
	r.types[field.Name] = field
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(field FieldType) {
	if err := r.Register(field); err != nil {
		panic(err)
	}
}

// Seal stops further registrations.
func (r *Registry) Seal() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup retrieves a field type by name.
func (r *Registry) Lookup(name string) (FieldType, error) {
	if r == nil {
		return FieldType{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, name)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	field, ok := r.types[name]
	if !ok {
		return FieldType{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, name)
	}
	return field, nil
}

// Names returns the registered field type names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneFieldType(field FieldType) FieldType {
	if field.Overridable != nil {
		field.Overridable = append([]string{}, field.Overridable...)
	}
	if field.ExtraSearchParams != nil {
		params := make(map[string]string, len(field.ExtraSearchParams))
		for key, value := range field.ExtraSearchParams {
			params[key] = value
		}
		field.ExtraSearchParams = params
	}
	return field
}
