// Package searches keeps the recent-searches list: most-recent-first,
// duplicates collapsed on re-add, capped at a small fixed count. The list
// is the one thing in this app that outlives the process, so it sits
// behind a Repository port with a Redis implementation.
package searches

import (
	"context"
	"errors"
	"strings"
)

// DefaultMaxRecent is the cap applied when the service is constructed
// without an explicit one.
const DefaultMaxRecent = 5

// ErrEmptySymbol is returned when Record is called with a blank symbol.
var ErrEmptySymbol = errors.New("searches: empty symbol")

// Repository persists the whole list. Ordering, dedupe and the cap live in
// the Service, so implementations only need get/put semantics.
type Repository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, symbols []string) error
}

// Service owns the recent-searches list logic.
type Service struct {
	repo Repository
	max  int
}

func NewService(repo Repository, max int) *Service {
	if max <= 0 {
		max = DefaultMaxRecent
	}
	return &Service{repo: repo, max: max}
}

// Recent returns the list, most recent first.
func (s *Service) Recent(ctx context.Context) ([]string, error) {
	return s.repo.Load(ctx)
}

// Record moves symbol to the front of the list, removing any previous
// occurrence, and trims to the cap. Returns the updated list.
func (s *Service) Record(ctx context.Context, symbol string) ([]string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	list, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(list)+1)
	out = append(out, symbol)
	for _, sym := range list {
		if sym != symbol {
			out = append(out, sym)
		}
	}
	if len(out) > s.max {
		out = out[:s.max]
	}

	if err := s.repo.Save(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clear empties the list.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Save(ctx, nil)
}
