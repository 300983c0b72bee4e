package gwhistory

import "fmt"

// History is a player's final performance record for one completed fixture.
// Rows are immutable once the fixture is finished: conflicts keep the first
// observed row instead of replacing it.
type History struct {
	PlayerCode int64
	PlayerID   int64
	SeasonID   int64

	FixtureID      int64
	GameweekID     *int64
	OpponentTeamID *int64
	WasHome        *bool

	TeamHScore  *int64
	TeamAScore  *int64
	TotalPoints *int64
	Minutes     *int64

	GoalsScored     *int64
	Assists         *int64
	CleanSheets     *int64
	GoalsConceded   *int64
	OwnGoals        *int64
	PenaltiesSaved  *int64
	PenaltiesMissed *int64
	YellowCards     *int64
	RedCards        *int64
	Saves           *int64
	Bonus           *int64
	BPS             *int64
	Starts          *int64

	Influence  *float64
	Creativity *float64
	Threat     *float64
	ICTIndex   *float64

	ExpectedGoals            *float64
	ExpectedAssists          *float64
	ExpectedGoalInvolvements *float64
	ExpectedGoalsConceded    *float64

	ClearancesBlocksInterceptions *int64
	Recoveries                    *int64
	Tackles                       *int64

	Value *int64

	RawData string
}

func (h History) Validate() error {
	if h.PlayerCode <= 0 {
		return fmt.Errorf("history player code must be greater than zero")
	}
	if h.FixtureID <= 0 {
		return fmt.Errorf("history fixture id must be greater than zero")
	}
	if h.SeasonID <= 0 {
		return fmt.Errorf("history season id must be greater than zero")
	}
	if h.RawData == "" {
		return fmt.Errorf("history raw data is required")
	}
	return nil
}
