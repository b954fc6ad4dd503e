package mapper

import (
	"agency-site-be/internal/entity"
	"agency-site-be/internal/model"
)

type MediaMapper struct{}

func NewMediaMapper() *MediaMapper {
	return &MediaMapper{}
}

func (m *MediaMapper) ToEntity(md *model.Media) *entity.Media {
	if md == nil {
		return nil
	}
	return &entity.Media{
		Id:        md.Id,
		Filename:  md.Filename,
		Alt:       md.Alt,
		MimeType:  md.MimeType,
		Width:     md.Width,
		Height:    md.Height,
		CreatedAt: md.CreatedAt,
	}
}

func (m *MediaMapper) ToModel(md *entity.Media) *model.Media {
	if md == nil {
		return nil
	}
	return &model.Media{
		Id:        md.Id,
		Filename:  md.Filename,
		Alt:       md.Alt,
		MimeType:  md.MimeType,
		Width:     md.Width,
		Height:    md.Height,
		CreatedAt: md.CreatedAt,
	}
}

func (m *MediaMapper) ToEntities(media []*model.Media) []*entity.Media {
	entities := make([]*entity.Media, len(media))
	for i, md := range media {
		entities[i] = m.ToEntity(md)
	}
	return entities
}
