package memory

import (
	"context"
	"sync"

	"github.com/fplarchive/pipeline/internal/domain/gameweek"
)

type gameweekKey struct {
	seasonID   int64
	gameweekID int64
}

type GameweekRepository struct {
	mu      sync.RWMutex
	current map[gameweekKey]gameweek.Gameweek
	archive map[gameweekKey]gameweek.Gameweek
	journal *Journal
}

func NewGameweekRepository(journal *Journal) *GameweekRepository {
	return &GameweekRepository{
		current: make(map[gameweekKey]gameweek.Gameweek),
		archive: make(map[gameweekKey]gameweek.Gameweek),
		journal: journal,
	}
}

func (r *GameweekRepository) UpsertCurrent(_ context.Context, items []gameweek.Gameweek) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.current[gameweekKey{seasonID: item.SeasonID, gameweekID: item.ID}] = item
	}

	r.journal.record("gameweeks")
	return nil
}

func (r *GameweekRepository) UpsertArchive(_ context.Context, items []gameweek.Gameweek) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.archive[gameweekKey{seasonID: item.SeasonID, gameweekID: item.ID}] = item
	}

	r.journal.record("gameweeks_archive")
	return nil
}

func (r *GameweekRepository) Current(seasonID, gameweekID int64) (gameweek.Gameweek, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.current[gameweekKey{seasonID: seasonID, gameweekID: gameweekID}]
	return item, ok
}

func (r *GameweekRepository) Archived(seasonID, gameweekID int64) (gameweek.Gameweek, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.archive[gameweekKey{seasonID: seasonID, gameweekID: gameweekID}]
	return item, ok
}

func (r *GameweekRepository) CurrentLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.current)
}

func (r *GameweekRepository) ArchiveLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.archive)
}
