package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

// Registry resolves provider ids to adapters. It is filled once at startup
// and read-only afterwards.
type Registry struct {
	adapters map[esport.Provider]Adapter
}

func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[esport.Provider]Adapter, len(adapters))}
	for _, a := range adapters {
		if a.Provider == "" {
			return nil, fmt.Errorf("adapter provider is required")
		}
		if a.Source == nil || a.Reader == nil || a.Validator == nil || a.Transformer == nil {
			return nil, fmt.Errorf("adapter %s is incomplete", a.Provider)
		}
		if _, dup := r.adapters[a.Provider]; dup {
			return nil, fmt.Errorf("adapter %s registered twice", a.Provider)
		}
		r.adapters[a.Provider] = a
	}
	return r, nil
}

func (r *Registry) Resolve(p esport.Provider) (Adapter, error) {
	if r != nil {
		if a, ok := r.adapters[p]; ok {
			return a, nil
		}
	}
	return Adapter{}, &UnknownProviderError{Name: string(p)}
}

// ResolveName resolves a raw provider name as received at the boundary.
func (r *Registry) ResolveName(name string) (Adapter, error) {
	return r.Resolve(esport.Provider(strings.ToLower(strings.TrimSpace(name))))
}

func (r *Registry) Providers() []esport.Provider {
	if r == nil {
		return nil
	}
	out := make([]esport.Provider, 0, len(r.adapters))
	for p := range r.adapters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
