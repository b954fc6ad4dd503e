package mapper

import (
	"encoding/json"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/model"

	"gorm.io/datatypes"
)

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}

	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entity.Post{
		Id:           p.Id,
		Slug:         p.Slug,
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		Content:      json.RawMessage(p.Content),
		CoverMediaId: p.CoverMediaId,
		Author:       p.Author,
		Tags:         tags,
		Status:       entity.ContentStatus(p.Status),
		PublishedAt:  p.PublishedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    timeToPtr(p.UpdatedAt),
		DeletedAt:    deletedAtToPtr(p.DeletedAt),
		IsDeleted:    p.DeletedAt.Valid,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}

	return &model.Post{
		Id:           p.Id,
		Slug:         p.Slug,
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		Content:      datatypes.JSON(p.Content),
		CoverMediaId: p.CoverMediaId,
		Author:       p.Author,
		Tags:         datatypes.NewJSONSlice(p.Tags),
		Status:       string(p.Status),
		PublishedAt:  p.PublishedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    ptrToTime(p.UpdatedAt),
		DeletedAt:    ptrToDeletedAt(p.DeletedAt, p.IsDeleted),
	}
}

func (m *PostMapper) ToEntities(posts []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, len(posts))
	for i, p := range posts {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
