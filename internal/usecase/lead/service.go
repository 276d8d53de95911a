// Package lead serves lead listing and identifier resolution.
package lead

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	leadscope "github.com/signalworks/leadscope"
	"github.com/signalworks/leadscope/internal/domain"
)

// storeIDPattern matches the fixed-length hex form of a store identifier.
var storeIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// resolution is one stage of identifier resolution. A stage whose guard
// rejects the token is skipped; a stage that misses (ErrNotFound) yields to
// the next one.
type resolution struct {
	name    string
	applies func(token string) bool
	lookup  func(ctx context.Context, token string) (leadscope.Lead, error)
}

// Service handles lead queries.
type Service struct {
	repo        Repository
	resolutions []resolution
}

// New creates a lead service. The resolution order is part of the contract:
// the store identifier always takes precedence over the domain identifier.
func New(repo Repository) *Service {
	s := &Service{repo: repo}
	s.resolutions = []resolution{
		{name: "store_id", applies: isStoreID, lookup: repo.GetByStoreID},
		{name: "lead_id", applies: func(string) bool { return true }, lookup: repo.GetByLeadID},
	}
	return s
}

// List returns leads sorted by capture time, newest first.
func (s *Service) List(ctx context.Context) ([]leadscope.Lead, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// Resolve maps an opaque token to exactly one lead. Callers pass either the
// store identifier or the domain identifier interchangeably; the stages are
// tried in order and the first hit wins. A token matching neither fails with
// ErrNotFound.
func (s *Service) Resolve(ctx context.Context, token string) (leadscope.Lead, error) {
	for _, r := range s.resolutions {
		if !r.applies(token) {
			continue
		}
		l, err := r.lookup(ctx, token)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return leadscope.Lead{}, fmt.Errorf("resolve lead by %s: %w", r.name, err)
		}
		return l, nil
	}
	return leadscope.Lead{}, domain.ErrNotFound
}

func isStoreID(token string) bool {
	return storeIDPattern.MatchString(token)
}
