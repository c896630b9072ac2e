package booking

import (
	"context"
	"sync"

	"github.com/m04kA/interview-slots/internal/domain"
	"github.com/m04kA/interview-slots/internal/integrations/events"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, e.Type)
	}
	return result
}

type countingMetrics struct {
	mu        sync.Mutex
	outcomes  map[string]int
	conflicts int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{outcomes: make(map[string]int)}
}

func (m *countingMetrics) ObserveBooking(op, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[op+"/"+outcome]++
}

func (m *countingMetrics) ObserveConflict(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

// interferingRepo wraps a real store and lets a test act between a read and
// the conditional update that follows it.
type interferingRepo struct {
	SlotRepository
	beforeUpdate func(ctx context.Context, id int64) error
	updates      int
}

func (r *interferingRepo) ConditionalUpdate(ctx context.Context, id, expectedVersion int64, update domain.SlotUpdate) (*domain.Slot, error) {
	r.updates++
	if r.beforeUpdate != nil {
		if err := r.beforeUpdate(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.SlotRepository.ConditionalUpdate(ctx, id, expectedVersion, update)
}
