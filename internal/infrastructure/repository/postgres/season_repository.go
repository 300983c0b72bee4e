package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplarchive/pipeline/internal/domain/season"
	qb "github.com/fplarchive/pipeline/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// Register creates the season row if it does not exist yet. An existing row
// keeps its original attributes. When the season is current, every other
// season loses its current flag in the same transaction.
func (r *SeasonRepository) Register(ctx context.Context, item season.Season) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx register season: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if item.IsCurrent {
		query, args, err := qb.Update("seasons").
			Set("is_current", false).
			Where(
				qb.Expr("is_current"),
				qb.NotEq("season_id", item.ID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear current seasons query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear current seasons: %w", err)
		}
	}

	insertModel := seasonInsertModel{
		SeasonID:  item.ID,
		Name:      item.Name,
		IsCurrent: item.IsCurrent,
		RawData:   item.RawData,
	}
	query, args, err := qb.InsertModel("seasons", insertModel, "ON CONFLICT (season_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build register season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("register season %d: %w", item.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit register season tx: %w", err)
	}

	return nil
}

type seasonInsertModel struct {
	SeasonID  int64  `db:"season_id"`
	Name      string `db:"name"`
	IsCurrent bool   `db:"is_current"`
	RawData   string `db:"raw_data"`
}
