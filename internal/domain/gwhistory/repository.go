package gwhistory

import "context"

// Repository writes completed-fixture performance rows. InsertMissing is
// insert-or-ignore: a natural-key collision leaves the existing row alone.
type Repository interface {
	InsertMissing(ctx context.Context, items []History) error
}
