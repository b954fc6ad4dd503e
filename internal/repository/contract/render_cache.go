package contract

import (
	"context"

	"agency-site-be/internal/entity"
)

// RenderCache stores rendered documents keyed by content hash and format.
type RenderCache interface {
	Get(ctx context.Context, key string) (*entity.RenderedDocument, bool)
	Set(ctx context.Context, key string, doc *entity.RenderedDocument)
}
