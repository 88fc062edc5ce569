package domain

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrEmptyItemName = errors.New("item name is required")
	ErrNegativePrice = errors.New("price must be greater or equal to zero")
	ErrInvalidPrice  = errors.New("price must be a finite number")
	ErrEmptyStoreID  = errors.New("store id is required")
)

// Item is a priced entity belonging to exactly one store.
type Item struct {
	ID      string
	Name    string
	Price   float64
	StoreID string
}

// NewItem validates the invariants and builds a new Item aggregate.
func NewItem(id, name string, price float64, storeID string) (*Item, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, ErrEmptyStoreID
	}
	item := &Item{ID: id, StoreID: storeID}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.Reprice(price); err != nil {
		return nil, err
	}
	return item, nil
}

// Rename mutates the item name ensuring the invariant.
func (i *Item) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyItemName
	}
	i.Name = name
	return nil
}

// Reprice accepts zero and positive prices.
func (i *Item) Reprice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	if price < 0 {
		return ErrNegativePrice
	}
	i.Price = price
	return nil
}

// Validate re-applies core invariants for persistence.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.StoreID) == "" {
		return ErrEmptyStoreID
	}
	if err := i.Rename(i.Name); err != nil {
		return err
	}
	return i.Reprice(i.Price)
}
