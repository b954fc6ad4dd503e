package contract

import (
	"context"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/repository/specification"
)

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error)
}
