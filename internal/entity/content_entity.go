package entity

import "time"

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusScheduled ContentStatus = "scheduled"
)

// IsVisible reports whether content with this status and publish time is public at now.
// Scheduled content becomes visible once its publish time has passed.
func IsVisible(status ContentStatus, publishedAt *time.Time, now time.Time) bool {
	switch status {
	case ContentStatusPublished:
		return publishedAt == nil || !publishedAt.After(now)
	case ContentStatusScheduled:
		return publishedAt != nil && !publishedAt.After(now)
	}
	return false
}
