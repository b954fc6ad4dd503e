package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Post struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug         string                      `gorm:"type:varchar(160);not null;uniqueIndex"`
	Title        string                      `gorm:"type:varchar(255);not null"`
	Excerpt      string                      `gorm:"type:text"`
	Content      datatypes.JSON              `gorm:"type:jsonb"`
	CoverMediaId *uuid.UUID                  `gorm:"type:uuid"`
	Author       string                      `gorm:"type:varchar(120)"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Status       string                      `gorm:"type:varchar(20);not null;default:'draft';index"`
	PublishedAt  *time.Time                  `gorm:"index"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt              `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}
