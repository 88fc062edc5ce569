package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	catalogtypes "github.com/Apurer/go-gin-store-api/internal/domains/catalog/application/types"
)

// MaxIdempotencyKeyLength matches the width of the stored key column.
const MaxIdempotencyKeyLength = 255

type normalizedCreateItemInput struct {
	Name    *string  `json:"name"`
	Price   *float64 `json:"price"`
	StoreID *string  `json:"store_id"`
}

// FingerprintCreateItem builds a deterministic hash of the create-item payload (excluding the idempotency key).
func FingerprintCreateItem(input catalogtypes.CreateItemInput) (string, error) {
	payload, err := json.Marshal(normalizedCreateItemInput{
		Name:    input.Name,
		Price:   input.Price,
		StoreID: input.StoreID,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
