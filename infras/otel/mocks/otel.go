package mocks

import (
	"context"
	"slotlink/infras/otel"
	"sync"
)

// Otel is a no-op tracer that records counter increments and spans marked as failed so tests can
// assert on them.
type Otel struct {
	mu     sync.Mutex
	counts map[string]int
	traced map[string]int
}

// NewScope implements otel.Otel.
func (o *Otel) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	return ctx, &scopeImpl{name: name, parent: o}
}

// Traced returns how many spans with the given name ended up marked with an error.
func (o *Otel) Traced(name string) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.traced[name]
}

func (o *Otel) trace(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.traced[name]++
}

// Count implements otel.Otel.
func (o *Otel) Count(_ context.Context, name string, attributes map[string]string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := name
	for _, attr := range []string{"outcome", "kind", "result"} {
		if value, ok := attributes[attr]; ok {
			key += "|" + value
		}
	}

	o.counts[key]++
}

// Counted returns how often name was counted with the given attribute values in outcome, kind, result order.
func (o *Otel) Counted(name string, values ...string) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := name
	for _, value := range values {
		key += "|" + value
	}

	return o.counts[key]
}

func NewOtel() *Otel {
	return &Otel{counts: map[string]int{}, traced: map[string]int{}}
}
