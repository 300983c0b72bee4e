package memory

import (
	"context"
	"sync"

	"github.com/fplarchive/pipeline/internal/domain/futurefixture"
)

type futureFixtureKey struct {
	playerCode        int64
	fetchedGameweekID int64
	fixtureID         int64
}

type FutureFixtureRepository struct {
	mu      sync.RWMutex
	items   map[futureFixtureKey]futurefixture.FutureFixture
	journal *Journal
}

func NewFutureFixtureRepository(journal *Journal) *FutureFixtureRepository {
	return &FutureFixtureRepository{
		items:   make(map[futureFixtureKey]futurefixture.FutureFixture),
		journal: journal,
	}
}

func (r *FutureFixtureRepository) UpsertMany(_ context.Context, items []futurefixture.FutureFixture) error {
	if len(items) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		key := futureFixtureKey{
			playerCode:        item.PlayerCode,
			fetchedGameweekID: item.FetchedGameweekID,
			fixtureID:         item.FixtureID,
		}
		r.items[key] = item
	}

	r.journal.record("player_future_fixtures")
	return nil
}

func (r *FutureFixtureRepository) Get(playerCode, fetchedGameweekID, fixtureID int64) (futurefixture.FutureFixture, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := futureFixtureKey{
		playerCode:        playerCode,
		fetchedGameweekID: fetchedGameweekID,
		fixtureID:         fixtureID,
	}
	item, ok := r.items[key]
	return item, ok
}

func (r *FutureFixtureRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
