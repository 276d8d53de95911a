// Package company serves company listing.
package company

import (
	"context"
	"fmt"

	leadscope "github.com/signalworks/leadscope"
)

// Service handles company queries.
type Service struct {
	repo Repository
}

// New creates a company service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns companies sorted by total signal count, highest first.
func (s *Service) List(ctx context.Context) ([]leadscope.Company, error) {
	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}
