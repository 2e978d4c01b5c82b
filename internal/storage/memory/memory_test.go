package memory

import (
	"context"
	"errors"
	"testing"

	"ledger/internal/storage"
)

func TestMemoryStoreLoadSave(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Load(ctx, storage.SlotExpenses); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	data := []byte(`[]`)
	if err := s.Save(ctx, storage.SlotExpenses, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	data[0] = 'x'

	got, err := s.Load(ctx, storage.SlotExpenses)
	if err != nil || string(got) != `[]` {
		t.Fatalf("store must copy on save: got %q err=%v", got, err)
	}
	got[0] = 'y'
	again, _ := s.Load(ctx, storage.SlotExpenses)
	if string(again) != `[]` {
		t.Fatalf("store must copy on load: got %q", again)
	}
}

func TestSeed(t *testing.T) {
	s := Seed(map[string][]byte{storage.SlotBudgets: []byte(`not json`)})
	got, err := s.Load(context.Background(), storage.SlotBudgets)
	if err != nil || string(got) != "not json" {
		t.Fatalf("unexpected seed: %q err=%v", got, err)
	}
}
