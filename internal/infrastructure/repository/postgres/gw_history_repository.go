package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplarchive/pipeline/internal/domain/gwhistory"
	qb "github.com/fplarchive/pipeline/internal/platform/querybuilder"
)

type GwHistoryRepository struct {
	db *sqlx.DB
}

func NewGwHistoryRepository(db *sqlx.DB) *GwHistoryRepository {
	return &GwHistoryRepository{db: db}
}

// InsertMissing writes completed-fixture rows and leaves existing rows
// untouched. Stats for a finished fixture are final, so the first stored
// version wins over any later fetch.
func (r *GwHistoryRepository) InsertMissing(ctx context.Context, items []gwhistory.History) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]gwHistoryInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, gwHistoryInsertModel{
			PlayerCode:                    item.PlayerCode,
			PlayerID:                      item.PlayerID,
			SeasonID:                      item.SeasonID,
			FixtureID:                     item.FixtureID,
			GameweekID:                    item.GameweekID,
			OpponentTeamID:                item.OpponentTeamID,
			WasHome:                       item.WasHome,
			TeamHScore:                    item.TeamHScore,
			TeamAScore:                    item.TeamAScore,
			TotalPoints:                   item.TotalPoints,
			Minutes:                       item.Minutes,
			GoalsScored:                   item.GoalsScored,
			Assists:                       item.Assists,
			CleanSheets:                   item.CleanSheets,
			GoalsConceded:                 item.GoalsConceded,
			OwnGoals:                      item.OwnGoals,
			PenaltiesSaved:                item.PenaltiesSaved,
			PenaltiesMissed:               item.PenaltiesMissed,
			YellowCards:                   item.YellowCards,
			RedCards:                      item.RedCards,
			Saves:                         item.Saves,
			Bonus:                         item.Bonus,
			BPS:                           item.BPS,
			Starts:                        item.Starts,
			Influence:                     item.Influence,
			Creativity:                    item.Creativity,
			Threat:                        item.Threat,
			ICTIndex:                      item.ICTIndex,
			ExpectedGoals:                 item.ExpectedGoals,
			ExpectedAssists:               item.ExpectedAssists,
			ExpectedGoalInvolvements:      item.ExpectedGoalInvolvements,
			ExpectedGoalsConceded:         item.ExpectedGoalsConceded,
			ClearancesBlocksInterceptions: item.ClearancesBlocksInterceptions,
			Recoveries:                    item.Recoveries,
			Tackles:                       item.Tackles,
			Value:                         item.Value,
			RawData:                       item.RawData,
		})
	}

	query, args, err := qb.InsertModels("player_gw_history", models,
		"ON CONFLICT (player_code, fixture_id, season_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert gameweek history query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %d gameweek history rows: %w", len(items), err)
	}

	return nil
}

type gwHistoryInsertModel struct {
	PlayerCode int64 `db:"player_code"`
	PlayerID   int64 `db:"player_id"`
	SeasonID   int64 `db:"season_id"`

	FixtureID      int64  `db:"fixture_id"`
	GameweekID     *int64 `db:"gameweek_id"`
	OpponentTeamID *int64 `db:"opponent_team_id"`
	WasHome        *bool  `db:"was_home"`

	TeamHScore  *int64 `db:"team_h_score"`
	TeamAScore  *int64 `db:"team_a_score"`
	TotalPoints *int64 `db:"total_points"`
	Minutes     *int64 `db:"minutes"`

	GoalsScored     *int64 `db:"goals_scored"`
	Assists         *int64 `db:"assists"`
	CleanSheets     *int64 `db:"clean_sheets"`
	GoalsConceded   *int64 `db:"goals_conceded"`
	OwnGoals        *int64 `db:"own_goals"`
	PenaltiesSaved  *int64 `db:"penalties_saved"`
	PenaltiesMissed *int64 `db:"penalties_missed"`
	YellowCards     *int64 `db:"yellow_cards"`
	RedCards        *int64 `db:"red_cards"`
	Saves           *int64 `db:"saves"`
	Bonus           *int64 `db:"bonus"`
	BPS             *int64 `db:"bps"`
	Starts          *int64 `db:"starts"`

	Influence  *float64 `db:"influence"`
	Creativity *float64 `db:"creativity"`
	Threat     *float64 `db:"threat"`
	ICTIndex   *float64 `db:"ict_index"`

	ExpectedGoals            *float64 `db:"expected_goals"`
	ExpectedAssists          *float64 `db:"expected_assists"`
	ExpectedGoalInvolvements *float64 `db:"expected_goal_involvements"`
	ExpectedGoalsConceded    *float64 `db:"expected_goals_conceded"`

	ClearancesBlocksInterceptions *int64 `db:"clearances_blocks_interceptions"`
	Recoveries                    *int64 `db:"recoveries"`
	Tackles                       *int64 `db:"tackles"`

	Value *int64 `db:"value"`

	RawData string `db:"raw_data"`
}
