package memory

import (
	"context"
	"sync"

	"github.com/fplarchive/pipeline/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	items   map[int64]season.Season
	journal *Journal
}

func NewSeasonRepository(journal *Journal) *SeasonRepository {
	return &SeasonRepository{
		items:   make(map[int64]season.Season),
		journal: journal,
	}
}

func (r *SeasonRepository) Register(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.IsCurrent {
		for id, existing := range r.items {
			if id != item.ID && existing.IsCurrent {
				existing.IsCurrent = false
				r.items[id] = existing
			}
		}
	}

	if _, exists := r.items[item.ID]; !exists {
		r.items[item.ID] = item
	}

	r.journal.record("seasons")
	return nil
}

func (r *SeasonRepository) Get(id int64) (season.Season, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok
}

func (r *SeasonRepository) Current() (season.Season, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.IsCurrent {
			return item, true
		}
	}
	return season.Season{}, false
}
