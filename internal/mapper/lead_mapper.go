package mapper

import (
	"agency-site-be/internal/entity"
	"agency-site-be/internal/model"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func (m *LeadMapper) ToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}
	return &entity.Lead{
		Id:         l.Id,
		Name:       l.Name,
		Email:      l.Email,
		Company:    l.Company,
		Phone:      l.Phone,
		Budget:     l.Budget,
		Message:    l.Message,
		SourcePage: l.SourcePage,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *LeadMapper) ToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}
	return &model.Lead{
		Id:         l.Id,
		Name:       l.Name,
		Email:      l.Email,
		Company:    l.Company,
		Phone:      l.Phone,
		Budget:     l.Budget,
		Message:    l.Message,
		SourcePage: l.SourcePage,
		CreatedAt:  l.CreatedAt,
	}
}

func (m *LeadMapper) ToEntities(leads []*model.Lead) []*entity.Lead {
	entities := make([]*entity.Lead, len(leads))
	for i, l := range leads {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
