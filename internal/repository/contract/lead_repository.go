package contract

import (
	"context"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/repository/specification"
)

// Leads are append-only.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
