// Package store persists sessions between server restarts.
package store

import (
	"context"
	"errors"
	"sync"

	"geister/engine"
	"geister/game"
)

var ErrNotFound = errors.New("session not found")

// Store saves and loads exported sessions by id.
type Store interface {
	Save(ctx context.Context, id string, saved engine.Saved) error
	// Load returns ErrNotFound when nothing was saved under id.
	Load(ctx context.Context, id string) (engine.Saved, error)
	Close() error
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]engine.Saved
}

// NewMemory returns a Store that lives as long as the process.
func NewMemory() Store {
	return &memory{sessions: make(map[string]engine.Saved)}
}

func (m *memory) Save(ctx context.Context, id string, saved engine.Saved) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = copySaved(saved)
	return nil
}

func (m *memory) Load(ctx context.Context, id string) (engine.Saved, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if saved, ok := m.sessions[id]; ok {
		return copySaved(saved), nil
	}
	return engine.Saved{}, ErrNotFound
}

func (m *memory) Close() error {
	return nil
}

// copySaved keeps callers from mutating what the store holds.
func copySaved(saved engine.Saved) engine.Saved {
	out := engine.Saved{History: make([]*game.Game, len(saved.History))}
	if saved.Game != nil {
		out.Game = saved.Game.Copy()
	}
	for i, g := range saved.History {
		if g != nil {
			out.History[i] = g.Copy()
		}
	}
	return out
}
