package model

import (
	"time"

	"gorm.io/datatypes"
)

type Global struct {
	Key       string         `gorm:"type:varchar(80);primaryKey"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Global) TableName() string {
	return "globals"
}
