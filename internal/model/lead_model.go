package model

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(120);not null"`
	Email      string    `gorm:"type:varchar(255);not null;index"`
	Company    string    `gorm:"type:varchar(120)"`
	Phone      string    `gorm:"type:varchar(40)"`
	Budget     string    `gorm:"type:varchar(20)"`
	Message    string    `gorm:"type:text"`
	SourcePage string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (Lead) TableName() string {
	return "leads"
}
