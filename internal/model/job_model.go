package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Job struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug           string         `gorm:"type:varchar(160);not null;uniqueIndex"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Location       string         `gorm:"type:varchar(120)"`
	Department     string         `gorm:"type:varchar(120)"`
	EmploymentType string         `gorm:"type:varchar(20);not null;default:'full_time'"`
	Description    datatypes.JSON `gorm:"type:jsonb"`
	Requirements   datatypes.JSON `gorm:"type:jsonb"`
	Status         string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	PublishedAt    *time.Time     `gorm:"index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Job) TableName() string {
	return "jobs"
}
