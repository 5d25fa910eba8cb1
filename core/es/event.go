package es

import (
	"fmt"
	"sync"

	"github.com/codewandler/esagg-go/internal/reflector"
)

// Registry maps event kind discriminants to constructors so persisted
// records can be decoded back to their exact original type.
type Registry struct {
	mu   sync.RWMutex
	news map[string]func() any
}

func NewRegistry() *Registry {
	return &Registry{news: map[string]func() any{}}
}

func (r *Registry) Register(kind string, ctor func() any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.news[kind] = ctor
}

func (r *Registry) ctor(kind string) (func() any, error) {
	r.mu.RLock()
	ctor, ok := r.news[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventKind, kind)
	}
	return ctor, nil
}

type Registrar interface {
	Register(kind string, ctor func() any)
}

// Event returns a reflection-free constructor for an event of type T.
// Each call to the returned function constructs a fresh *T via new(T).
func Event[T any]() func() any { return func() any { return new(T) } }

// RegisterEvents registers event constructors. For each constructor, one
// sample instance is created to derive the kind discriminant; future decodes
// call the original constructor so every decode yields a fresh instance.
func RegisterEvents(r Registrar, ctors ...func() any) {
	for _, ctor := range ctors {
		sample := ctor()
		r.Register(kindOf(sample), ctor)
	}
}

// Kinder lets an event override its kind discriminant. Events without it are
// keyed by their Go type name.
type Kinder interface{ EventKind() string }

func kindOf(ev any) string {
	if k, ok := ev.(Kinder); ok {
		return k.EventKind()
	}
	return reflector.TypeInfoOf(ev).Name
}

// KindOf returns the kind discriminant used to persist and decode ev.
func KindOf(ev any) string { return kindOf(ev) }
