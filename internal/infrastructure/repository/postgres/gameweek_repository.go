package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fplarchive/pipeline/internal/domain/gameweek"
	qb "github.com/fplarchive/pipeline/internal/platform/querybuilder"
)

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) UpsertCurrent(ctx context.Context, items []gameweek.Gameweek) error {
	return r.upsertInto(ctx, "gameweeks", items)
}

func (r *GameweekRepository) UpsertArchive(ctx context.Context, items []gameweek.Gameweek) error {
	return r.upsertInto(ctx, "gameweeks_archive", items)
}

func (r *GameweekRepository) upsertInto(ctx context.Context, table string, items []gameweek.Gameweek) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]gameweekInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, gameweekInsertModel{
			GameweekID:   item.ID,
			SeasonID:     item.SeasonID,
			Name:         item.Name,
			DeadlineTime: item.DeadlineAt,
			Finished:     item.Finished,
			IsCurrent:    item.IsCurrent,
			IsNext:       item.IsNext,
			RawData:      item.RawData,
		})
	}

	query, args, err := qb.InsertModels(table, models, `ON CONFLICT (season_id, gameweek_id)
DO UPDATE SET
    name = EXCLUDED.name,
    deadline_time = EXCLUDED.deadline_time,
    finished = EXCLUDED.finished,
    is_current = EXCLUDED.is_current,
    is_next = EXCLUDED.is_next,
    raw_data = EXCLUDED.raw_data,
    fetched_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d rows into %s: %w", len(items), table, err)
	}

	return nil
}

type gameweekInsertModel struct {
	GameweekID   int64      `db:"gameweek_id"`
	SeasonID     int64      `db:"season_id"`
	Name         *string    `db:"name"`
	DeadlineTime *time.Time `db:"deadline_time"`
	Finished     *bool      `db:"finished"`
	IsCurrent    *bool      `db:"is_current"`
	IsNext       *bool      `db:"is_next"`
	RawData      string     `db:"raw_data"`
}
