package memory

import (
	"context"
	"sync"

	"github.com/fplarchive/pipeline/internal/domain/gwhistory"
)

type historyKey struct {
	playerCode int64
	fixtureID  int64
	seasonID   int64
}

type GwHistoryRepository struct {
	mu      sync.RWMutex
	items   map[historyKey]gwhistory.History
	journal *Journal
}

func NewGwHistoryRepository(journal *Journal) *GwHistoryRepository {
	return &GwHistoryRepository{
		items:   make(map[historyKey]gwhistory.History),
		journal: journal,
	}
}

// InsertMissing keeps the first stored row for each completed fixture.
func (r *GwHistoryRepository) InsertMissing(_ context.Context, items []gwhistory.History) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		key := historyKey{playerCode: item.PlayerCode, fixtureID: item.FixtureID, seasonID: item.SeasonID}
		if _, exists := r.items[key]; exists {
			continue
		}
		r.items[key] = item
	}

	r.journal.record("player_gw_history")
	return nil
}

func (r *GwHistoryRepository) Get(playerCode, fixtureID, seasonID int64) (gwhistory.History, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[historyKey{playerCode: playerCode, fixtureID: fixtureID, seasonID: seasonID}]
	return item, ok
}

func (r *GwHistoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
