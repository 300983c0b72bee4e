package memory

import (
	"context"
	"sync"

	"github.com/fplarchive/pipeline/internal/domain/team"
)

type teamKey struct {
	seasonID int64
	teamID   int64
}

type TeamRepository struct {
	mu      sync.RWMutex
	items   map[teamKey]team.Team
	journal *Journal
}

func NewTeamRepository(journal *Journal) *TeamRepository {
	return &TeamRepository{
		items:   make(map[teamKey]team.Team),
		journal: journal,
	}
}

func (r *TeamRepository) UpsertMany(_ context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[teamKey{seasonID: item.SeasonID, teamID: item.ID}] = item
	}

	r.journal.record("teams")
	return nil
}

func (r *TeamRepository) Get(seasonID, teamID int64) (team.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamKey{seasonID: seasonID, teamID: teamID}]
	return item, ok
}

func (r *TeamRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
