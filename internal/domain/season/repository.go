package season

import "context"

// Repository persists season rows. Register is create-if-absent: the first
// registration of a season id wins and later ones leave the row unchanged.
// Registering a current season clears the current flag on every other row.
type Repository interface {
	Register(ctx context.Context, item Season) error
}
