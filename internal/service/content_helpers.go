package service

import (
	"bytes"
	"context"
	"encoding/json"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/specification"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/pkg/events"
	"agency-site-be/pkg/lexical"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	excerptRunes    = 160
)

func pageOf(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}

// documentFrom returns the stored form of a request document. Empty content
// falls back to the markdown source, then to an empty document.
func documentFrom(content json.RawMessage, markdown string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if !json.Valid(trimmed) || trimmed[0] != '{' {
			return nil, ErrInvalidDocument
		}
		return json.RawMessage(trimmed), nil
	}

	var doc *lexical.Document
	if markdown != "" {
		doc, _ = lexical.FromMarkdown([]byte(markdown))
	}
	raw, err := lexical.Encode(doc)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func excerptOf(stored string, content json.RawMessage) string {
	if stored != "" {
		return stored
	}
	return lexical.Excerpt(lexical.Decode(content), excerptRunes)
}

// mediaAssets loads media rows by id and attaches their public URLs.
func mediaAssets(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	urls IMediaURLBuilder,
	log logger.ILogger,
	ids []uuid.UUID,
) (map[uuid.UUID]*dto.MediaAsset, error) {
	out := map[uuid.UUID]*dto.MediaAsset{}
	if len(ids) == 0 {
		return out, nil
	}

	media, err := uow.MediaRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, m := range media {
		u, err := urls.URL(m)
		if err != nil {
			log.Warn("MEDIA", "Failed to build media URL", map[string]interface{}{
				"media_id": m.Id.String(),
				"error":    err,
			})
			continue
		}
		out[m.Id] = toMediaAsset(m, u)
	}
	return out, nil
}

func toMediaAsset(m *entity.Media, url string) *dto.MediaAsset {
	return &dto.MediaAsset{
		Id:       m.Id,
		URL:      url,
		Alt:      m.Alt,
		Width:    m.Width,
		Height:   m.Height,
		MimeType: m.MimeType,
	}
}

func parseFormat(format string) (entity.RenderFormat, error) {
	if format == "" {
		return entity.RenderFormatHTML, nil
	}
	f := entity.RenderFormat(format)
	if !f.Valid() {
		return "", ErrInvalidFormat
	}
	return f, nil
}

// publishEvent is fire-and-forget: subscribers are auxiliary to the write.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, evt events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, evt); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err,
		})
	}
}
