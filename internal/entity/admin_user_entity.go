package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdminUser struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}
