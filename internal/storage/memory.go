// Package storage provides brew-log persistence implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"brewflow/internal/domain"
	"brewflow/internal/logger"
)

// Compile-time interface check.
var _ domain.LogStore = (*MemoryStore)(nil)

// MemoryStore keeps brew logs in memory. Safe for concurrent access.
// Useful for tests and for running without a data directory.
type MemoryStore struct {
	mu   sync.RWMutex
	logs map[string]*domain.BrewLog
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory log store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		logs: make(map[string]*domain.BrewLog),
		log:  log.Named("storage"),
	}
}

// Create persists a brew log built from the request.
func (s *MemoryStore) Create(ctx context.Context, req domain.CreateLogRequest) (*domain.BrewLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &domain.BrewLog{
		ID:         uuid.NewString(),
		BrewedAt:   req.BrewedAt,
		Method:     req.Method,
		RecipeID:   req.RecipeID,
		RecipeName: req.RecipeName,
		Dose:       req.Dose,
		Yield:      req.Yield,
		WaterTempC: req.WaterTempC,
		GrindLabel: req.GrindLabel,
		BrewTime:   req.BrewTime,
		Rating:     req.Rating,
		Tag:        req.Tag,
		Note:       req.Note,
	}
	s.logs[entry.ID] = entry
	s.log.Debug("saved brew log %s (%s, rating %d)", entry.ID, entry.RecipeName, entry.Rating)
	return entry, nil
}

// List returns all brew logs, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.BrewLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.BrewLog, 0, len(s.logs))
	for _, entry := range s.logs {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BrewedAt.After(out[j].BrewedAt) })
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
