package domain

import (
	"errors"
	"strings"
)

var ErrEmptyStoreName = errors.New("store name is required")

// Store is a named container owning zero or more items.
type Store struct {
	ID    string
	Name  string
	Items []Item
}

// NewStore validates the invariants and builds a new Store aggregate.
func NewStore(id, name string) (*Store, error) {
	s := &Store{ID: id}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	return s, nil
}

// Rename sets the store name. Non-blank names are kept verbatim so uniqueness stays an exact match.
func (s *Store) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyStoreName
	}
	s.Name = name
	return nil
}

// Validate re-applies core invariants for persistence.
func (s *Store) Validate() error {
	return s.Rename(s.Name)
}
