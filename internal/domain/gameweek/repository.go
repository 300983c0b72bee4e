package gameweek

import "context"

// Repository persists gameweek rows. Both writes replace on conflict so a
// re-run refreshes the stored state of every round.
type Repository interface {
	UpsertCurrent(ctx context.Context, items []Gameweek) error
	UpsertArchive(ctx context.Context, items []Gameweek) error
}
