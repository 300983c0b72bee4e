package futurefixture

import (
	"fmt"
	"time"
)

// FutureFixture is an upcoming match as it appeared in a player's detail
// document at fetch time. The same fixture is recorded again at each fetch
// while it remains upcoming; rows are point-in-time observations and must
// not be deduplicated across fetches.
type FutureFixture struct {
	PlayerCode        int64
	PlayerID          int64
	FetchedGameweekID int64

	FixtureID         int64
	FixtureGameweekID *int64
	IsHome            *bool
	Difficulty        *int64
	TeamH             *int64
	TeamA             *int64
	KickoffAt         *time.Time

	RawData string
}

func (f FutureFixture) Validate() error {
	if f.PlayerCode <= 0 {
		return fmt.Errorf("future fixture player code must be greater than zero")
	}
	if f.FetchedGameweekID <= 0 {
		return fmt.Errorf("future fixture fetched gameweek id must be greater than zero")
	}
	if f.FixtureID <= 0 {
		return fmt.Errorf("future fixture id must be greater than zero")
	}
	if f.RawData == "" {
		return fmt.Errorf("future fixture raw data is required")
	}
	return nil
}
