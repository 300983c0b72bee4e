package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplarchive/pipeline/internal/domain/playersnapshot"
	qb "github.com/fplarchive/pipeline/internal/platform/querybuilder"
)

type PlayerSnapshotRepository struct {
	db *sqlx.DB
}

func NewPlayerSnapshotRepository(db *sqlx.DB) *PlayerSnapshotRepository {
	return &PlayerSnapshotRepository{db: db}
}

func (r *PlayerSnapshotRepository) UpsertMany(ctx context.Context, items []playersnapshot.Snapshot) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]playerSnapshotInsertModel, 0, len(items))
	for _, item := range items {
		scoutRisks, err := jsonValue(item.ScoutRisks)
		if err != nil {
			return fmt.Errorf("encode scout risks for player %d: %w", item.Code, err)
		}
		models = append(models, playerSnapshotInsertModel{
			PlayerCode:                    item.Code,
			PlayerID:                      item.PlayerID,
			GameweekID:                    item.GameweekID,
			SeasonID:                      item.SeasonID,
			WebName:                       item.WebName,
			FirstName:                     item.FirstName,
			SecondName:                    item.SecondName,
			TeamID:                        item.TeamID,
			ElementType:                   item.ElementType,
			Status:                        item.Status,
			NowCost:                       item.NowCost,
			ChanceOfPlayingNextRound:      item.ChanceOfPlayingNextRound,
			News:                          item.News,
			ScoutRisks:                    scoutRisks,
			TotalPoints:                   item.TotalPoints,
			Minutes:                       item.Minutes,
			GoalsScored:                   item.GoalsScored,
			Assists:                       item.Assists,
			CleanSheets:                   item.CleanSheets,
			GoalsConceded:                 item.GoalsConceded,
			Saves:                         item.Saves,
			Bonus:                         item.Bonus,
			YellowCards:                   item.YellowCards,
			RedCards:                      item.RedCards,
			Starts:                        item.Starts,
			Influence:                     item.Influence,
			Creativity:                    item.Creativity,
			Threat:                        item.Threat,
			ICTIndex:                      item.ICTIndex,
			ExpectedGoals:                 item.ExpectedGoals,
			ExpectedAssists:               item.ExpectedAssists,
			ExpectedGoalsConceded:         item.ExpectedGoalsConceded,
			ExpectedGoalInvolvements:      item.ExpectedGoalInvolvements,
			Form:                          item.Form,
			PointsPerGame:                 item.PointsPerGame,
			EPNext:                        item.EPNext,
			ClearancesBlocksInterceptions: item.ClearancesBlocksInterceptions,
			Recoveries:                    item.Recoveries,
			Tackles:                       item.Tackles,
			RawData:                       item.RawData,
		})
	}

	query, args, err := qb.InsertModels("player_snapshots", models, `ON CONFLICT (player_code, gameweek_id, season_id)
DO UPDATE SET
    player_id = EXCLUDED.player_id,
    web_name = EXCLUDED.web_name,
    first_name = EXCLUDED.first_name,
    second_name = EXCLUDED.second_name,
    team_id = EXCLUDED.team_id,
    element_type = EXCLUDED.element_type,
    status = EXCLUDED.status,
    now_cost = EXCLUDED.now_cost,
    chance_of_playing_next_round = EXCLUDED.chance_of_playing_next_round,
    news = EXCLUDED.news,
    scout_risks = EXCLUDED.scout_risks,
    total_points = EXCLUDED.total_points,
    minutes = EXCLUDED.minutes,
    goals_scored = EXCLUDED.goals_scored,
    assists = EXCLUDED.assists,
    clean_sheets = EXCLUDED.clean_sheets,
    goals_conceded = EXCLUDED.goals_conceded,
    saves = EXCLUDED.saves,
    bonus = EXCLUDED.bonus,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    starts = EXCLUDED.starts,
    influence = EXCLUDED.influence,
    creativity = EXCLUDED.creativity,
    threat = EXCLUDED.threat,
    ict_index = EXCLUDED.ict_index,
    expected_goals = EXCLUDED.expected_goals,
    expected_assists = EXCLUDED.expected_assists,
    expected_goals_conceded = EXCLUDED.expected_goals_conceded,
    expected_goal_involvements = EXCLUDED.expected_goal_involvements,
    form = EXCLUDED.form,
    points_per_game = EXCLUDED.points_per_game,
    ep_next = EXCLUDED.ep_next,
    clearances_blocks_interceptions = EXCLUDED.clearances_blocks_interceptions,
    recoveries = EXCLUDED.recoveries,
    tackles = EXCLUDED.tackles,
    raw_data = EXCLUDED.raw_data,
    fetched_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert player snapshots query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d player snapshots: %w", len(items), err)
	}

	return nil
}

type playerSnapshotInsertModel struct {
	PlayerCode int64 `db:"player_code"`
	PlayerID   int64 `db:"player_id"`
	GameweekID int64 `db:"gameweek_id"`
	SeasonID   int64 `db:"season_id"`

	WebName     *string `db:"web_name"`
	FirstName   *string `db:"first_name"`
	SecondName  *string `db:"second_name"`
	TeamID      *int64  `db:"team_id"`
	ElementType *int64  `db:"element_type"`
	Status      *string `db:"status"`
	NowCost     *int64  `db:"now_cost"`

	ChanceOfPlayingNextRound *int64  `db:"chance_of_playing_next_round"`
	News                     *string `db:"news"`
	ScoutRisks               *string `db:"scout_risks"`

	TotalPoints   *int64 `db:"total_points"`
	Minutes       *int64 `db:"minutes"`
	GoalsScored   *int64 `db:"goals_scored"`
	Assists       *int64 `db:"assists"`
	CleanSheets   *int64 `db:"clean_sheets"`
	GoalsConceded *int64 `db:"goals_conceded"`
	Saves         *int64 `db:"saves"`
	Bonus         *int64 `db:"bonus"`
	YellowCards   *int64 `db:"yellow_cards"`
	RedCards      *int64 `db:"red_cards"`
	Starts        *int64 `db:"starts"`

	Influence  *float64 `db:"influence"`
	Creativity *float64 `db:"creativity"`
	Threat     *float64 `db:"threat"`
	ICTIndex   *float64 `db:"ict_index"`

	ExpectedGoals            *float64 `db:"expected_goals"`
	ExpectedAssists          *float64 `db:"expected_assists"`
	ExpectedGoalsConceded    *float64 `db:"expected_goals_conceded"`
	ExpectedGoalInvolvements *float64 `db:"expected_goal_involvements"`

	Form          *float64 `db:"form"`
	PointsPerGame *float64 `db:"points_per_game"`
	EPNext        *float64 `db:"ep_next"`

	ClearancesBlocksInterceptions *int64 `db:"clearances_blocks_interceptions"`
	Recoveries                    *int64 `db:"recoveries"`
	Tackles                       *int64 `db:"tackles"`

	RawData string `db:"raw_data"`
}
