package team

import "fmt"

// Team is one competing club within a season. The numeric id is
// season-scoped; Code is the club's stable identifier across seasons.
type Team struct {
	ID        int64
	SeasonID  int64
	Code      *int64
	Name      *string
	ShortName *string
	Strength  *int64
	RawData   string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if t.SeasonID <= 0 {
		return fmt.Errorf("team season id must be greater than zero")
	}
	if t.RawData == "" {
		return fmt.Errorf("team raw data is required")
	}
	return nil
}
