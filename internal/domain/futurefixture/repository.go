package futurefixture

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []FutureFixture) error
}
