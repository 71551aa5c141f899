package health

import (
	"sync"
	"time"
)

// Status of one registered component.
type Status struct {
	Component   string    `json:"component"`
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Message     string    `json:"message,omitempty"`
}

// Registry tracks component health for the readiness endpoints.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Status
}

func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]*Status),
	}
}

// Set records the component's current status.
func (r *Registry) Set(component, status, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.components[component] = &Status{
		Component:   component,
		Status:      status,
		LastChecked: time.Now(),
		Message:     message,
	}
}

// All returns a snapshot of every component status.
func (r *Registry) All() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]Status, 0, len(r.components))
	for _, s := range r.components {
		statuses = append(statuses, *s)
	}
	return statuses
}

// Ready reports whether every registered component is healthy.
func (r *Registry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.components {
		if s.Status != "healthy" {
			return false
		}
	}
	return true
}
