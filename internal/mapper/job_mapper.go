package mapper

import (
	"encoding/json"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/model"

	"gorm.io/datatypes"
)

type JobMapper struct{}

func NewJobMapper() *JobMapper {
	return &JobMapper{}
}

func (m *JobMapper) ToEntity(j *model.Job) *entity.Job {
	if j == nil {
		return nil
	}

	return &entity.Job{
		Id:             j.Id,
		Slug:           j.Slug,
		Title:          j.Title,
		Location:       j.Location,
		Department:     j.Department,
		EmploymentType: entity.EmploymentType(j.EmploymentType),
		Description:    json.RawMessage(j.Description),
		Requirements:   json.RawMessage(j.Requirements),
		Status:         entity.ContentStatus(j.Status),
		PublishedAt:    j.PublishedAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      timeToPtr(j.UpdatedAt),
		DeletedAt:      deletedAtToPtr(j.DeletedAt),
		IsDeleted:      j.DeletedAt.Valid,
	}
}

func (m *JobMapper) ToModel(j *entity.Job) *model.Job {
	if j == nil {
		return nil
	}

	return &model.Job{
		Id:             j.Id,
		Slug:           j.Slug,
		Title:          j.Title,
		Location:       j.Location,
		Department:     j.Department,
		EmploymentType: string(j.EmploymentType),
		Description:    datatypes.JSON(j.Description),
		Requirements:   datatypes.JSON(j.Requirements),
		Status:         string(j.Status),
		PublishedAt:    j.PublishedAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      ptrToTime(j.UpdatedAt),
		DeletedAt:      ptrToDeletedAt(j.DeletedAt, j.IsDeleted),
	}
}

func (m *JobMapper) ToEntities(jobs []*model.Job) []*entity.Job {
	entities := make([]*entity.Job, len(jobs))
	for i, j := range jobs {
		entities[i] = m.ToEntity(j)
	}
	return entities
}
