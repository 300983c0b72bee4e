package season

import "fmt"

// Season is one edition of the competition, e.g. "2025/26". ID is the
// starting year of the season and is the stable key every other table
// scopes itself by.
type Season struct {
	ID        int64
	Name      string
	IsCurrent bool
	RawData   string
}

func (s Season) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("season id must be greater than zero")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.RawData == "" {
		return fmt.Errorf("season raw data is required")
	}
	return nil
}
