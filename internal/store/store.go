// Package store holds the single in-memory State behind one writer lock.
// Every repository routes reads through View and writes through Update, so
// multi-entity operations are atomic and readers never observe a half-done
// transition.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"turndown/config"
	roomModel "turndown/internal/domains/room/model"
	"turndown/internal/snapshot"
	"turndown/shared/constant"
	"turndown/shared/timezone"
)

type Store struct {
	mu            sync.RWMutex
	state         *State
	snapshots     snapshot.Store
	restoreWindow time.Duration
}

// New builds the store and restores the last snapshot, seeding a fresh
// state when none exists. Construction fails hard: a service that cannot
// restore its state should not take traffic.
func New(snapshots snapshot.Store, conf *config.Config) *Store {
	hours := conf.Snapshot.RestoreWindowHours
	if hours <= 0 {
		hours = constant.DefaultRestoreWindowHours
	}

	s := &Store{
		state:         NewState(),
		snapshots:     snapshots,
		restoreWindow: time.Duration(hours) * time.Hour,
	}

	if err := s.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to restore housekeeping state")
	}

	return s
}

// Load restores the last snapshot if one exists and is usable, otherwise
// seeds a fresh state. Sessions that outlived the restore window are dropped
// and their in-progress rooms returned to the cleaning queue.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	if document == nil {
		s.seed()
		log.Info().Int("rooms", len(s.state.Rooms)).Msg("No snapshot found, seeded fresh state")

		return nil
	}

	state := &State{}
	if err = json.Unmarshal(document, state); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	state.normalize()
	s.state = state
	pruned := s.pruneStaleSessions()

	log.Info().
		Int("rooms", len(s.state.Rooms)).
		Int("sessions_pruned", pruned).
		Time("saved_at", s.state.SavedAt).
		Msg("State restored from snapshot")

	return nil
}

// pruneStaleSessions removes sessions older than the restore window. Rooms
// the session had in cleaning go back to checkout so another cleaner can
// pick them up; the checklist is kept.
func (s *Store) pruneStaleSessions() (pruned int) {
	cutoff := timezone.Now().Add(-s.restoreWindow)

	for cleanerID, session := range s.state.Sessions {
		startedAt := s.state.SavedAt
		if session.StartedAt != nil {
			startedAt = *session.StartedAt
		}

		if !startedAt.Before(cutoff) {
			continue
		}

		for _, number := range session.Rooms {
			room, ok := s.state.Rooms[number]
			if !ok || room.AssignedCleaner != cleanerID {
				continue
			}

			if room.Status == roomModel.StatusInCleaning {
				room.Status = roomModel.StatusCheckout
				room.AssignedCleaner = ""
				room.SessionStart = nil
			}
		}

		delete(s.state.Sessions, cleanerID)
		pruned++
	}

	return pruned
}

// View runs fn under the read lock. fn must not retain references to state
// internals; copy what it returns.
func (s *Store) View(fn func(state *State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.state)
}

// Update runs fn under the write lock and, when fn succeeds, persists a
// snapshot. A failed save is logged but does not fail the mutation: the
// in-memory state is authoritative while the process lives.
func (s *Store) Update(ctx context.Context, fn func(state *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state); err != nil {
		return err
	}

	s.state.SavedAt = timezone.Now()

	document, err := json.Marshal(s.state)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode state snapshot")

		return nil
	}

	if err = s.snapshots.Save(ctx, document); err != nil {
		log.Error().Err(err).Msg("Failed to persist state snapshot")
	}

	return nil
}
