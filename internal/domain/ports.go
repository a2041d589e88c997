package domain

import (
	"context"
	"time"
)

// RecipeSource provides recipe snapshots. Implementations can be in-memory
// (builtin recipes), file-based, or backed by a real store.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*RecipeSnapshot, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// LogStore persists brew logs. Implementations can be in-memory or SQLite.
type LogStore interface {
	Create(ctx context.Context, req CreateLogRequest) (*BrewLog, error)
	List(ctx context.Context) ([]*BrewLog, error)
	Close() error
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(input string) Intent
}

// Clock abstracts wall-clock time so session timing is testable. The
// session's elapsed time is always recomputed from Now(), never
// accumulated, which keeps it immune to suspend/resume drift.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }
