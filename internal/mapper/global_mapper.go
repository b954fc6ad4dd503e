package mapper

import (
	"encoding/json"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/model"

	"gorm.io/datatypes"
)

type GlobalMapper struct{}

func NewGlobalMapper() *GlobalMapper {
	return &GlobalMapper{}
}

func (m *GlobalMapper) ToEntity(g *model.Global) *entity.Global {
	if g == nil {
		return nil
	}
	return &entity.Global{
		Key:       g.Key,
		Data:      json.RawMessage(g.Data),
		UpdatedAt: timeToPtr(g.UpdatedAt),
	}
}

func (m *GlobalMapper) ToModel(g *entity.Global) *model.Global {
	if g == nil {
		return nil
	}
	return &model.Global{
		Key:       g.Key,
		Data:      datatypes.JSON(g.Data),
		UpdatedAt: ptrToTime(g.UpdatedAt),
	}
}

func (m *GlobalMapper) ToEntities(globals []*model.Global) []*entity.Global {
	entities := make([]*entity.Global, len(globals))
	for i, g := range globals {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
