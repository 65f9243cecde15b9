package source

import (
	"fmt"
	"sort"
	"sync"
)

// Producer returns a finite ordered sequence of arguments. Each item is
// either a domain.Tuple or a single value.
type Producer func() ([]any, error)

// Producers maps producer IDs to zero-argument producers.
type Producers struct {
	mu        sync.RWMutex
	producers map[string]Producer
}

// NewProducers creates an empty registry
func NewProducers() *Producers {
	return &Producers{producers: make(map[string]Producer)}
}

// Register binds id to fn. Registering the same id twice is an error.
func (p *Producers) Register(id string, fn Producer) error {
	if id == "" {
		return fmt.Errorf("producer id must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("producer %q is nil", id)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.producers[id]; exists {
		return fmt.Errorf("producer %q already registered", id)
	}
	p.producers[id] = fn
	return nil
}

// Lookup returns the producer bound to id.
func (p *Producers) Lookup(id string) (Producer, bool) {
	if p == nil {
		return nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.producers[id]
	return fn, ok
}

// IDs returns the registered producer IDs, sorted.
func (p *Producers) IDs() []string {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, 0, len(p.producers))
	for id := range p.producers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
