package application_test

import (
	"context"
	"errors"
	"sync"

	"github.com/spycat-agency/service-mission/internal/common/kafka"
)

// recordingPublisher keeps every published event for inspection.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	fail   bool
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// stubBreeds accepts exactly the breeds in known.
type stubBreeds struct {
	known map[string]bool
	err   error
	asked []string
}

func (s *stubBreeds) IsValidBreed(_ context.Context, breed string) (bool, error) {
	s.asked = append(s.asked, breed)
	if s.err != nil {
		return false, s.err
	}
	return s.known[breed], nil
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
