package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplarchive/pipeline/internal/domain/team"
	qb "github.com/fplarchive/pipeline/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]teamInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamInsertModel{
			TeamID:    item.ID,
			SeasonID:  item.SeasonID,
			Code:      item.Code,
			Name:      item.Name,
			ShortName: item.ShortName,
			Strength:  item.Strength,
			RawData:   item.RawData,
		})
	}

	query, args, err := qb.InsertModels("teams", models, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    code = EXCLUDED.code,
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    strength = EXCLUDED.strength,
    raw_data = EXCLUDED.raw_data,
    fetched_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert teams query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d teams: %w", len(items), err)
	}

	return nil
}

type teamInsertModel struct {
	TeamID    int64   `db:"team_id"`
	SeasonID  int64   `db:"season_id"`
	Code      *int64  `db:"code"`
	Name      *string `db:"name"`
	ShortName *string `db:"short_name"`
	Strength  *int64  `db:"strength"`
	RawData   string  `db:"raw_data"`
}
