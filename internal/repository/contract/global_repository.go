package contract

import (
	"context"

	"agency-site-be/internal/entity"
)

type GlobalRepository interface {
	FindByKey(ctx context.Context, key string) (*entity.Global, error)
	FindAll(ctx context.Context) ([]*entity.Global, error)
	// Save inserts or replaces the global stored under global.Key.
	Save(ctx context.Context, global *entity.Global) error
}
