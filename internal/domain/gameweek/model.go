package gameweek

import (
	"fmt"
	"time"
)

// Gameweek is one scoring round of a season. The same rows are written to
// a current-state table and to an archive table; both carry the full event
// document so a finished round can be reconstructed later.
type Gameweek struct {
	ID       int64
	SeasonID int64

	Name       *string
	DeadlineAt *time.Time
	Finished   *bool
	IsCurrent  *bool
	IsNext     *bool

	RawData string
}

func (g Gameweek) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("gameweek id must be greater than zero")
	}
	if g.SeasonID <= 0 {
		return fmt.Errorf("gameweek season id must be greater than zero")
	}
	if g.RawData == "" {
		return fmt.Errorf("gameweek raw data is required")
	}
	return nil
}
