package persona

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports that no persona matches the requested identifier.
var ErrNotFound = errors.New("persona not found")

// CustomStore persists user-created personas.
type CustomStore interface {
	InsertPersona(ctx context.Context, p Persona) error
	FindPersona(ctx context.Context, id string) (Persona, error)
	ListPersonas(ctx context.Context, limit int) ([]Persona, error)
}

// listLimit caps the custom personas returned by List.
const listLimit = 100

// Registry resolves persona identifiers against the built-in set first and
// the custom store second.
type Registry struct {
	builtins []Persona
	custom   CustomStore
}

// NewRegistry builds a registry over the supplied built-ins and custom store.
func NewRegistry(builtins []Persona, custom CustomStore) *Registry {
	return &Registry{
		builtins: append([]Persona(nil), builtins...),
		custom:   custom,
	}
}

// Default returns the command-core persona.
func (r *Registry) Default() Persona {
	return r.builtins[0]
}

// Builtins returns the immutable built-in set.
func (r *Registry) Builtins() []Persona {
	return append([]Persona(nil), r.builtins...)
}

// Resolve looks up a persona by identifier. Built-ins win over custom
// personas sharing an identifier.
func (r *Registry) Resolve(ctx context.Context, id string) (Persona, error) {
	for _, p := range r.builtins {
		if p.ID == id {
			return p, nil
		}
	}

	p, err := r.custom.FindPersona(ctx, id)
	if err != nil {
		return Persona{}, err
	}
	return p, nil
}

// List returns built-ins followed by all custom personas, in that order.
func (r *Registry) List(ctx context.Context) ([]Persona, error) {
	custom, err := r.custom.ListPersonas(ctx, listLimit)
	if err != nil {
		return nil, err
	}

	all := append([]Persona(nil), r.builtins...)
	return append(all, custom...), nil
}

// Create stores a custom persona, assigning an identifier and creation time
// when absent. Identifier collisions with built-ins are not rejected; the
// stored record is simply shadowed at resolve time.
func (r *Registry) Create(ctx context.Context, draft Persona) (Persona, error) {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}

	if err := r.custom.InsertPersona(ctx, draft); err != nil {
		return Persona{}, err
	}
	return draft, nil
}
