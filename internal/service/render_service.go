package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"agency-site-be/internal/config"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/contract"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/pkg/lexical"

	"github.com/google/uuid"
)

type IRenderService interface {
	// Render renders stored content, consulting the render caches first.
	Render(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error)
	// RenderUncached renders caller-supplied content without touching the caches.
	RenderUncached(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error)
	// RenderDetached is RenderUncached without media lookups: only uploads
	// that carry their own URL render. Used by unauthenticated callers.
	RenderDetached(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error)
}

type renderService struct {
	uowFactory unitofwork.RepositoryFactory
	urls       IMediaURLBuilder
	renderer   *lexical.Renderer
	caches     []contract.RenderCache // fastest first
	htmlOpts   []lexical.HTMLOption
	logger     logger.ILogger
}

func NewRenderService(
	uowFactory unitofwork.RepositoryFactory,
	urls IMediaURLBuilder,
	cfg config.RenderConfig,
	log logger.ILogger,
	caches ...contract.RenderCache,
) IRenderService {
	return &renderService{
		uowFactory: uowFactory,
		urls:       urls,
		renderer: lexical.NewRenderer(
			lexical.WithMaxDepth(cfg.MaxDepth),
			lexical.WithMaxNodes(cfg.MaxNodes),
		),
		caches: caches,
		htmlOpts: []lexical.HTMLOption{
			lexical.WithHighlighting(cfg.Highlight),
			lexical.WithHighlightStyle(cfg.Style),
		},
		logger: log,
	}
}

func cacheKey(content []byte, format entity.RenderFormat) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]) + ":" + string(format)
}

func (s *renderService) Render(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error) {
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}

	key := cacheKey(content, format)
	for i, c := range s.caches {
		if doc, ok := c.Get(ctx, key); ok {
			for _, lower := range s.caches[:i] {
				lower.Set(ctx, key, doc)
			}
			return doc, nil
		}
	}

	doc, err := s.render(ctx, content, format, true)
	if err != nil {
		return nil, err
	}
	for _, c := range s.caches {
		c.Set(ctx, key, doc)
	}
	return doc, nil
}

func (s *renderService) RenderUncached(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error) {
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	return s.render(ctx, content, format, true)
}

func (s *renderService) RenderDetached(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error) {
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	return s.render(ctx, content, format, false)
}

func (s *renderService) render(ctx context.Context, content json.RawMessage, format entity.RenderFormat, resolveMedia bool) (*entity.RenderedDocument, error) {
	doc := lexical.Decode(content)

	renderer := s.renderer
	if refs := lexical.UploadRefs(doc); resolveMedia && len(refs) > 0 {
		assets, err := s.resolveAssets(ctx, refs)
		if err != nil {
			return nil, err
		}
		renderer = renderer.With(lexical.WithAssetResolver(assets))
	}

	out := &entity.RenderedDocument{Format: format}
	var res lexical.Result
	switch format {
	case entity.RenderFormatHTML:
		t := lexical.NewHTMLTarget(s.htmlOpts...)
		res = renderer.Render(doc, t)
		out.Body = t.String()
	case entity.RenderFormatMarkdown:
		t := lexical.NewMarkdownTarget()
		res = renderer.Render(doc, t)
		out.Body = t.String()
	case entity.RenderFormatText:
		t := lexical.NewPlainTextTarget()
		res = renderer.Render(doc, t)
		out.Body = t.String()
	case entity.RenderFormatTree:
		t := lexical.NewTreeTarget()
		res = renderer.Render(doc, t)
		out.Tree = t.Elements()
	}
	out.Empty = res.Empty
	out.Warnings = res.Warnings

	if len(res.Warnings) > 0 {
		s.logger.Debug("RENDER", "Rendered with warnings", map[string]interface{}{
			"format":   string(format),
			"warnings": len(res.Warnings),
			"first":    res.Warnings[0].Message,
		})
	}
	return out, nil
}

// resolveAssets loads the media rows behind upload refs. Refs that are not
// media ids, or whose row is gone, stay unresolved and the renderer omits them.
func (s *renderService) resolveAssets(ctx context.Context, refs []string) (lexical.AssetMap, error) {
	refByID := make(map[uuid.UUID]string, len(refs))
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if id, err := uuid.Parse(ref); err == nil {
			refByID[id] = ref
			ids = append(ids, id)
		}
	}

	assets := lexical.AssetMap{}
	if len(ids) == 0 {
		return assets, nil
	}

	media, err := mediaAssets(ctx, s.uowFactory.NewUnitOfWork(ctx), s.urls, s.logger, ids)
	if err != nil {
		return nil, err
	}
	for id, m := range media {
		assets[refByID[id]] = &lexical.Asset{
			URL:      m.URL,
			Alt:      m.Alt,
			MimeType: m.MimeType,
			Width:    m.Width,
			Height:   m.Height,
		}
	}
	return assets, nil
}
