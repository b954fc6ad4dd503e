package specification

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// Visible keeps published content whose publish time has passed (or is unset) and
// scheduled content that is due at Now.
type Visible struct {
	Now time.Time
}

func (s Visible) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"((status = ? AND (published_at IS NULL OR published_at <= ?)) OR (status = ? AND published_at <= ?))",
		"published", s.Now, "scheduled", s.Now,
	)
}

// ByTag matches rows whose jsonb tags array contains Tag.
type ByTag struct {
	Tag string
}

func (s ByTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(datatypes.JSONArrayQuery("tags").Contains(s.Tag))
}

type ByKey struct {
	Key string
}

func (s ByKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key = ?", s.Key)
}
