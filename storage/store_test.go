package storage

import (
	"errors"
	"testing"
)

func TestMemoryStoreQuota(t *testing.T) {
	store := NewMemoryStore()
	store.MaxValueBytes = 10

	if err := store.Set("k", "small"); err != nil {
		t.Fatalf("small value rejected: %v", err)
	}
	err := store.Set("k", "this value is way too large")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	// The previous value survives a rejected write.
	got, ok, _ := store.Get("k")
	if !ok || got != "small" {
		t.Fatalf("expected previous value intact, got %q ok=%v", got, ok)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := store.Get("data"); ok || err != nil {
		t.Fatalf("expected clean absence, got ok=%v err=%v", ok, err)
	}

	if err := store.Set("data", `{"teams":[]}`); err != nil {
		t.Fatal(err)
	}
	got, ok, err := store.Get("data")
	if err != nil || !ok || got != `{"teams":[]}` {
		t.Fatalf("unexpected read: %q ok=%v err=%v", got, ok, err)
	}

	if err := store.Set("data", `{}`); err != nil {
		t.Fatal(err)
	}
	got, _, _ = store.Get("data")
	if got != `{}` {
		t.Fatalf("overwrite failed, got %q", got)
	}

	if err := store.Remove("data"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.Get("data"); ok {
		t.Fatal("expected absence after remove")
	}
	// Removing twice is not an error.
	if err := store.Remove("data"); err != nil {
		t.Fatal(err)
	}
}
