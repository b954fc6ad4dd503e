package entity

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	Id         uuid.UUID
	Name       string
	Email      string
	Company    string
	Phone      string
	Budget     string
	Message    string
	SourcePage string
	CreatedAt  time.Time
}
