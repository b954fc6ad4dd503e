package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

type Job struct {
	Id             uuid.UUID
	Slug           string
	Title          string
	Location       string
	Department     string
	EmploymentType EmploymentType
	Description    json.RawMessage
	Requirements   json.RawMessage
	Status         ContentStatus
	PublishedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

func (j *Job) IsVisible(now time.Time) bool {
	return IsVisible(j.Status, j.PublishedAt, now)
}
