package usecase

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/fplarchive/pipeline/external/fplapi"
	"github.com/fplarchive/pipeline/internal/domain/futurefixture"
	"github.com/fplarchive/pipeline/internal/domain/gameweek"
	"github.com/fplarchive/pipeline/internal/domain/gwhistory"
	"github.com/fplarchive/pipeline/internal/domain/playersnapshot"
	"github.com/fplarchive/pipeline/internal/domain/team"
	"github.com/fplarchive/pipeline/internal/platform/coerce"
)

// The build functions below turn one loosely-typed upstream record into a
// typed row. Identity fields are required; every other field is a
// best-effort projection that lands as nil when the source value is absent
// or unreadable. The verbatim record always travels along as JSON.

func rawJSON(rec fplapi.RawRecord) (string, error) {
	encoded, err := sonic.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode raw record: %w", err)
	}
	return string(encoded), nil
}

func buildGameweek(seasonID int64, rec fplapi.RawRecord) (gameweek.Gameweek, error) {
	id := coerce.Int(rec["id"])
	if id == nil || *id <= 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: event id is missing", ErrInvalidInput)
	}
	raw, err := rawJSON(rec)
	if err != nil {
		return gameweek.Gameweek{}, err
	}

	return gameweek.Gameweek{
		ID:         *id,
		SeasonID:   seasonID,
		Name:       coerce.String(rec["name"]),
		DeadlineAt: coerce.Time(rec["deadline_time"]),
		Finished:   coerce.Bool(rec["finished"]),
		IsCurrent:  coerce.Bool(rec["is_current"]),
		IsNext:     coerce.Bool(rec["is_next"]),
		RawData:    raw,
	}, nil
}

func buildTeam(seasonID int64, rec fplapi.RawRecord) (team.Team, error) {
	id := coerce.Int(rec["id"])
	if id == nil || *id <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is missing", ErrInvalidInput)
	}
	raw, err := rawJSON(rec)
	if err != nil {
		return team.Team{}, err
	}

	return team.Team{
		ID:        *id,
		SeasonID:  seasonID,
		Code:      coerce.Int(rec["code"]),
		Name:      coerce.String(rec["name"]),
		ShortName: coerce.String(rec["short_name"]),
		Strength:  coerce.Int(rec["strength"]),
		RawData:   raw,
	}, nil
}

func buildPlayerSnapshot(seasonID, gameweekID int64, rec fplapi.RawRecord) (playersnapshot.Snapshot, error) {
	code := coerce.Int(rec["code"])
	if code == nil || *code <= 0 {
		return playersnapshot.Snapshot{}, fmt.Errorf("%w: player code is missing", ErrInvalidInput)
	}
	id := coerce.Int(rec["id"])
	if id == nil || *id <= 0 {
		return playersnapshot.Snapshot{}, fmt.Errorf("%w: player id is missing", ErrInvalidInput)
	}
	raw, err := rawJSON(rec)
	if err != nil {
		return playersnapshot.Snapshot{}, err
	}

	return playersnapshot.Snapshot{
		Code:       *code,
		PlayerID:   *id,
		GameweekID: gameweekID,
		SeasonID:   seasonID,

		WebName:     coerce.String(rec["web_name"]),
		FirstName:   coerce.String(rec["first_name"]),
		SecondName:  coerce.String(rec["second_name"]),
		TeamID:      coerce.Int(rec["team"]),
		ElementType: coerce.Int(rec["element_type"]),
		Status:      coerce.String(rec["status"]),
		NowCost:     coerce.Int(rec["now_cost"]),

		ChanceOfPlayingNextRound: coerce.Int(rec["chance_of_playing_next_round"]),
		News:                     coerce.String(rec["news"]),
		ScoutRisks:               coerce.Literal(rec["scout_risks"]),

		TotalPoints:   coerce.Int(rec["total_points"]),
		Minutes:       coerce.Int(rec["minutes"]),
		GoalsScored:   coerce.Int(rec["goals_scored"]),
		Assists:       coerce.Int(rec["assists"]),
		CleanSheets:   coerce.Int(rec["clean_sheets"]),
		GoalsConceded: coerce.Int(rec["goals_conceded"]),
		Saves:         coerce.Int(rec["saves"]),
		Bonus:         coerce.Int(rec["bonus"]),
		YellowCards:   coerce.Int(rec["yellow_cards"]),
		RedCards:      coerce.Int(rec["red_cards"]),
		Starts:        coerce.Int(rec["starts"]),

		Influence:  coerce.Float(rec["influence"]),
		Creativity: coerce.Float(rec["creativity"]),
		Threat:     coerce.Float(rec["threat"]),
		ICTIndex:   coerce.Float(rec["ict_index"]),

		ExpectedGoals:            coerce.Float(rec["expected_goals"]),
		ExpectedAssists:          coerce.Float(rec["expected_assists"]),
		ExpectedGoalsConceded:    coerce.Float(rec["expected_goals_conceded"]),
		ExpectedGoalInvolvements: coerce.Float(rec["expected_goal_involvements"]),

		Form:          coerce.Float(rec["form"]),
		PointsPerGame: coerce.Float(rec["points_per_game"]),
		EPNext:        coerce.Float(rec["ep_next"]),

		ClearancesBlocksInterceptions: coerce.Int(rec["clearances_blocks_interceptions"]),
		Recoveries:                    coerce.Int(rec["recoveries"]),
		Tackles:                       coerce.Int(rec["tackles"]),

		RawData: raw,
	}, nil
}

func buildFutureFixture(playerCode, playerID, fetchedGameweekID int64, rec fplapi.RawRecord) (futurefixture.FutureFixture, error) {
	fixtureID := coerce.Int(rec["id"])
	if fixtureID == nil || *fixtureID <= 0 {
		return futurefixture.FutureFixture{}, fmt.Errorf("%w: fixture id is missing", ErrInvalidInput)
	}
	raw, err := rawJSON(rec)
	if err != nil {
		return futurefixture.FutureFixture{}, err
	}

	return futurefixture.FutureFixture{
		PlayerCode:        playerCode,
		PlayerID:          playerID,
		FetchedGameweekID: fetchedGameweekID,

		FixtureID:         *fixtureID,
		FixtureGameweekID: coerce.Int(rec["event"]),
		IsHome:            coerce.Bool(rec["is_home"]),
		Difficulty:        coerce.Int(rec["difficulty"]),
		TeamH:             coerce.Int(rec["team_h"]),
		TeamA:             coerce.Int(rec["team_a"]),
		KickoffAt:         coerce.Time(rec["kickoff_time"]),

		RawData: raw,
	}, nil
}

func buildHistory(playerCode, playerID, seasonID int64, rec fplapi.RawRecord) (gwhistory.History, error) {
	fixtureID := coerce.Int(rec["fixture"])
	if fixtureID == nil || *fixtureID <= 0 {
		return gwhistory.History{}, fmt.Errorf("%w: history fixture id is missing", ErrInvalidInput)
	}
	raw, err := rawJSON(rec)
	if err != nil {
		return gwhistory.History{}, err
	}

	return gwhistory.History{
		PlayerCode: playerCode,
		PlayerID:   playerID,
		SeasonID:   seasonID,

		FixtureID:      *fixtureID,
		GameweekID:     coerce.Int(rec["round"]),
		OpponentTeamID: coerce.Int(rec["opponent_team"]),
		WasHome:        coerce.Bool(rec["was_home"]),

		TeamHScore:  coerce.Int(rec["team_h_score"]),
		TeamAScore:  coerce.Int(rec["team_a_score"]),
		TotalPoints: coerce.Int(rec["total_points"]),
		Minutes:     coerce.Int(rec["minutes"]),

		GoalsScored:     coerce.Int(rec["goals_scored"]),
		Assists:         coerce.Int(rec["assists"]),
		CleanSheets:     coerce.Int(rec["clean_sheets"]),
		GoalsConceded:   coerce.Int(rec["goals_conceded"]),
		OwnGoals:        coerce.Int(rec["own_goals"]),
		PenaltiesSaved:  coerce.Int(rec["penalties_saved"]),
		PenaltiesMissed: coerce.Int(rec["penalties_missed"]),
		YellowCards:     coerce.Int(rec["yellow_cards"]),
		RedCards:        coerce.Int(rec["red_cards"]),
		Saves:           coerce.Int(rec["saves"]),
		Bonus:           coerce.Int(rec["bonus"]),
		BPS:             coerce.Int(rec["bps"]),
		Starts:          coerce.Int(rec["starts"]),

		Influence:  coerce.Float(rec["influence"]),
		Creativity: coerce.Float(rec["creativity"]),
		Threat:     coerce.Float(rec["threat"]),
		ICTIndex:   coerce.Float(rec["ict_index"]),

		ExpectedGoals:            coerce.Float(rec["expected_goals"]),
		ExpectedAssists:          coerce.Float(rec["expected_assists"]),
		ExpectedGoalInvolvements: coerce.Float(rec["expected_goal_involvements"]),
		ExpectedGoalsConceded:    coerce.Float(rec["expected_goals_conceded"]),

		ClearancesBlocksInterceptions: coerce.Int(rec["clearances_blocks_interceptions"]),
		Recoveries:                    coerce.Int(rec["recoveries"]),
		Tackles:                       coerce.Int(rec["tackles"]),

		Value: coerce.Int(rec["value"]),

		RawData: raw,
	}, nil
}
