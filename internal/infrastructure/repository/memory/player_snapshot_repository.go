package memory

import (
	"context"
	"sync"

	"github.com/fplarchive/pipeline/internal/domain/playersnapshot"
)

type snapshotKey struct {
	playerCode int64
	gameweekID int64
	seasonID   int64
}

type PlayerSnapshotRepository struct {
	mu      sync.RWMutex
	items   map[snapshotKey]playersnapshot.Snapshot
	journal *Journal
}

func NewPlayerSnapshotRepository(journal *Journal) *PlayerSnapshotRepository {
	return &PlayerSnapshotRepository{
		items:   make(map[snapshotKey]playersnapshot.Snapshot),
		journal: journal,
	}
}

func (r *PlayerSnapshotRepository) UpsertMany(_ context.Context, items []playersnapshot.Snapshot) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		key := snapshotKey{playerCode: item.Code, gameweekID: item.GameweekID, seasonID: item.SeasonID}
		r.items[key] = item
	}

	r.journal.record("player_snapshots")
	return nil
}

func (r *PlayerSnapshotRepository) Get(playerCode, gameweekID, seasonID int64) (playersnapshot.Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[snapshotKey{playerCode: playerCode, gameweekID: gameweekID, seasonID: seasonID}]
	return item, ok
}

func (r *PlayerSnapshotRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
