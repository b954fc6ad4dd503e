package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id           uuid.UUID
	Slug         string
	Title        string
	Excerpt      string
	Content      json.RawMessage // stored rich-text document
	CoverMediaId *uuid.UUID
	Author       string
	Tags         []string
	Status       ContentStatus
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

func (p *Post) IsVisible(now time.Time) bool {
	return IsVisible(p.Status, p.PublishedAt, now)
}
