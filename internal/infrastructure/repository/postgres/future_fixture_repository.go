package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fplarchive/pipeline/internal/domain/futurefixture"
	qb "github.com/fplarchive/pipeline/internal/platform/querybuilder"
)

type FutureFixtureRepository struct {
	db *sqlx.DB
}

func NewFutureFixtureRepository(db *sqlx.DB) *FutureFixtureRepository {
	return &FutureFixtureRepository{db: db}
}

func (r *FutureFixtureRepository) UpsertMany(ctx context.Context, items []futurefixture.FutureFixture) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]futureFixtureInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, futureFixtureInsertModel{
			PlayerCode:        item.PlayerCode,
			PlayerID:          item.PlayerID,
			FetchedGameweekID: item.FetchedGameweekID,
			FixtureID:         item.FixtureID,
			FixtureGameweekID: item.FixtureGameweekID,
			IsHome:            item.IsHome,
			Difficulty:        item.Difficulty,
			TeamH:             item.TeamH,
			TeamA:             item.TeamA,
			KickoffTime:       item.KickoffAt,
			RawData:           item.RawData,
		})
	}

	query, args, err := qb.InsertModels("player_future_fixtures", models, `ON CONFLICT (player_code, fetched_gameweek_id, fixture_id)
DO UPDATE SET
    player_id = EXCLUDED.player_id,
    fixture_gameweek_id = EXCLUDED.fixture_gameweek_id,
    is_home = EXCLUDED.is_home,
    difficulty = EXCLUDED.difficulty,
    team_h = EXCLUDED.team_h,
    team_a = EXCLUDED.team_a,
    kickoff_time = EXCLUDED.kickoff_time,
    raw_data = EXCLUDED.raw_data,
    fetched_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert future fixtures query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d future fixtures: %w", len(items), err)
	}

	return nil
}

type futureFixtureInsertModel struct {
	PlayerCode        int64      `db:"player_code"`
	PlayerID          int64      `db:"player_id"`
	FetchedGameweekID int64      `db:"fetched_gameweek_id"`
	FixtureID         int64      `db:"fixture_id"`
	FixtureGameweekID *int64     `db:"fixture_gameweek_id"`
	IsHome            *bool      `db:"is_home"`
	Difficulty        *int64     `db:"difficulty"`
	TeamH             *int64     `db:"team_h"`
	TeamA             *int64     `db:"team_a"`
	KickoffTime       *time.Time `db:"kickoff_time"`
	RawData           string     `db:"raw_data"`
}
