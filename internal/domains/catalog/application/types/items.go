package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFields indicates that a write payload omitted required fields.
var ErrMissingFields = errors.New("missing required fields")

// CreateItemInput captures inbound item creation payloads while preserving field presence.
type CreateItemInput struct {
	Name           *string  `json:"name,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	StoreID        *string  `json:"store_id,omitempty"`
	IdempotencyKey string   `json:"idempotency_key,omitempty"`
}

// MissingFields lists which mandatory fields are absent, using their wire names.
func (in CreateItemInput) MissingFields() []string {
	var missing []string
	if in.Name == nil {
		missing = append(missing, "name")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.StoreID == nil {
		missing = append(missing, "store_id")
	}
	return missing
}

// Validate checks that every mandatory field is present.
func (in CreateItemInput) Validate() error {
	if missing := in.MissingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// UpdateItemInput carries a partial update. Only non-nil fields are applied; the owning store never changes.
type UpdateItemInput struct {
	ID    string
	Name  *string
	Price *float64
}

// Empty reports whether the update carries no field at all.
func (in UpdateItemInput) Empty() bool {
	return in.Name == nil && in.Price == nil
}

// ItemIdentifier addresses a single item.
type ItemIdentifier struct {
	ID string
}

// MissingFieldsError names the absent fields and matches ErrMissingFields.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}
