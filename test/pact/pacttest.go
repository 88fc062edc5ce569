//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "store-api"
	ConsumerName = "store-portal"

	StateStoresBaseline = "stores baseline"
	StateStoreExists    = "store spencer exists with snacks"
	StateStoreMissing   = "no store with id missing-store"
)

const (
	ExistingStoreID = "pact-store-spencer"
	ExistingItemID  = "pact-item-snacks"
	MissingStoreID  = "missing-store"

	ExampleStoreName = "spencer"
	ExampleItemName  = "snacks"
	ExampleItemPrice = 12.5
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the store portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleStorePayload is the detail view of the seeded store.
func ExampleStorePayload() map[string]any {
	return map[string]any{
		"id":    ExistingStoreID,
		"name":  ExampleStoreName,
		"items": []map[string]any{ExampleStoreItemPayload()},
	}
}

// ExampleStoreItemPayload is an item as nested inside a store detail.
func ExampleStoreItemPayload() map[string]any {
	return map[string]any{
		"id":    ExistingItemID,
		"name":  ExampleItemName,
		"price": ExampleItemPrice,
	}
}

// ExampleItemPayload is the standalone item representation.
func ExampleItemPayload() map[string]any {
	return map[string]any{
		"id":       ExistingItemID,
		"name":     ExampleItemName,
		"price":    ExampleItemPrice,
		"store_id": ExistingStoreID,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
