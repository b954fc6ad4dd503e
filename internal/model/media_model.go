package model

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename  string    `gorm:"type:varchar(255);not null"`
	Alt       string    `gorm:"type:varchar(255)"`
	MimeType  string    `gorm:"type:varchar(80)"`
	Width     int
	Height    int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Media) TableName() string {
	return "media"
}
