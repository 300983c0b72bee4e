package playersnapshot

import "fmt"

// Snapshot is a player's cumulative season stats at the time of one fetch.
// A new fetch produces a new row; rows are never mutated afterwards.
//
// Code is the player's stable identifier across seasons. PlayerID is the
// season-scoped numeric id and must never be used to join across seasons.
type Snapshot struct {
	Code       int64
	PlayerID   int64
	GameweekID int64
	SeasonID   int64

	WebName     *string
	FirstName   *string
	SecondName  *string
	TeamID      *int64
	ElementType *int64
	Status      *string
	NowCost     *int64

	ChanceOfPlayingNextRound *int64
	News                     *string
	ScoutRisks               any

	TotalPoints   *int64
	Minutes       *int64
	GoalsScored   *int64
	Assists       *int64
	CleanSheets   *int64
	GoalsConceded *int64
	Saves         *int64
	Bonus         *int64
	YellowCards   *int64
	RedCards      *int64
	Starts        *int64

	Influence  *float64
	Creativity *float64
	Threat     *float64
	ICTIndex   *float64

	ExpectedGoals            *float64
	ExpectedAssists          *float64
	ExpectedGoalsConceded    *float64
	ExpectedGoalInvolvements *float64

	Form          *float64
	PointsPerGame *float64
	EPNext        *float64

	ClearancesBlocksInterceptions *int64
	Recoveries                    *int64
	Tackles                       *int64

	RawData string
}

func (s Snapshot) Validate() error {
	if s.Code <= 0 {
		return fmt.Errorf("snapshot player code must be greater than zero")
	}
	if s.GameweekID <= 0 {
		return fmt.Errorf("snapshot gameweek id must be greater than zero")
	}
	if s.SeasonID <= 0 {
		return fmt.Errorf("snapshot season id must be greater than zero")
	}
	if s.RawData == "" {
		return fmt.Errorf("snapshot raw data is required")
	}
	return nil
}
