package entity

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	Id        uuid.UUID
	Filename  string // object key below the media prefix
	Alt       string
	MimeType  string
	Width     int
	Height    int
	CreatedAt time.Time
}
