package dto

import (
	"encoding/json"
	"time"

	"agency-site-be/internal/entity"

	"github.com/google/uuid"
)

// ListQuery is shared by the public post and job listings.
type ListQuery struct {
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Tag   string `query:"tag" validate:"omitempty,max=64"`
}

type ShowQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=html markdown text tree"`
}

type MediaAsset struct {
	Id       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Alt      string    `json:"alt"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
	MimeType string    `json:"mime_type,omitempty"`
}

type PostSummary struct {
	Id          uuid.UUID   `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Excerpt     string      `json:"excerpt"`
	Cover       *MediaAsset `json:"cover,omitempty"`
	Author      string      `json:"author"`
	Tags        []string    `json:"tags"`
	PublishedAt *time.Time  `json:"published_at"`
}

type ShowPostResponse struct {
	PostSummary
	Body *entity.RenderedDocument `json:"body"`
}

type UpsertPostRequest struct {
	Slug         string
	Title        string          `json:"title" validate:"required,max=255"`
	Excerpt      string          `json:"excerpt" validate:"max=500"`
	Content      json.RawMessage `json:"content"`
	Markdown     string          `json:"markdown"` // used when content is empty
	CoverMediaId *uuid.UUID      `json:"cover_media_id"`
	Author       string          `json:"author" validate:"max=120"`
	Tags         []string        `json:"tags" validate:"max=20,dive,max=64"`
	Status       string          `json:"status" validate:"required,oneof=draft published scheduled"`
	PublishedAt  *time.Time      `json:"published_at"`
}

type JobSummary struct {
	Id             uuid.UUID  `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Location       string     `json:"location"`
	Department     string     `json:"department"`
	EmploymentType string     `json:"employment_type"`
	PublishedAt    *time.Time `json:"published_at"`
}

type ShowJobResponse struct {
	JobSummary
	Description  *entity.RenderedDocument `json:"description"`
	Requirements *entity.RenderedDocument `json:"requirements"`
}

type UpsertJobRequest struct {
	Slug           string
	Title          string          `json:"title" validate:"required,max=255"`
	Location       string          `json:"location" validate:"max=120"`
	Department     string          `json:"department" validate:"max=120"`
	EmploymentType string          `json:"employment_type" validate:"required,oneof=full_time part_time contract internship"`
	Description    json.RawMessage `json:"description"`
	Requirements   json.RawMessage `json:"requirements"`
	Status         string          `json:"status" validate:"required,oneof=draft published scheduled"`
	PublishedAt    *time.Time      `json:"published_at"`
}

type UpsertResponse struct {
	Id      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Created bool      `json:"created"`
}
