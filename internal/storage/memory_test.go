package storage

import (
	"context"
	"testing"
	"time"

	"brewflow/internal/logger"
)

func TestMemoryStoreCreateAndList(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		req := sampleRequest(base.Add(time.Duration(i) * time.Hour))
		req.Rating = i + 1
		entry, err := store.Create(ctx, req)
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		if entry.ID == "" || ids[entry.ID] {
			t.Fatalf("id %q not unique", entry.ID)
		}
		ids[entry.ID] = true
	}

	logs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("len = %d, want 3", len(logs))
	}
	for i, want := range []int{3, 2, 1} {
		if logs[i].Rating != want {
			t.Fatalf("logs[%d].Rating = %d, want %d (newest first)", i, logs[i].Rating, want)
		}
	}
}

func TestMemoryStoreEmptyList(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	logs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("len = %d, want 0", len(logs))
	}
}
