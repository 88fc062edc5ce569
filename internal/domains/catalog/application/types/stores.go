package types

// CreateStoreInput carries the payload for store creation. Nil fields were absent from the request.
type CreateStoreInput struct {
	Name *string
}

// StoreIdentifier addresses a single store.
type StoreIdentifier struct {
	ID string
}
