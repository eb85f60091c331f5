package entity

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Registry holds the entity descriptors known to the engine, keyed by
// entity name. Safe for concurrent use; descriptors are immutable once
// registered.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]Descriptor
	order    []string
	logger   *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entities: make(map[string]Descriptor),
		logger:   logger,
	}
}

// Register adds a descriptor under the given entity name. The descriptor is
// validated structurally; duplicate names are rejected.
func (r *Registry) Register(name string, d Descriptor) error {
	if name == "" {
		return fmt.Errorf("%w: entity name is required", ErrInvalidDescriptor)
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("entity %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}

	r.entities[name] = d
	r.order = append(r.order, name)
	r.logger.Info("entity registered",
		zap.String("entity", name),
		zap.String("table", d.TableName),
	)
	return nil
}

// Get returns the descriptor for an entity name.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.entities[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return d, nil
}

// Names returns the registered entity names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
