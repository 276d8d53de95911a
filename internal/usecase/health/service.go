// Package health coordinates readiness checks.
package health

import "context"

// StorePinger checks record store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// Service runs health checks.
type Service struct {
	store StorePinger
}

// New creates a Service.
func New(store StorePinger) *Service {
	return &Service{store: store}
}

// Check pings the record store.
func (s *Service) Check(ctx context.Context) error {
	return s.store.Ping(ctx)
}
