package dto

import "encoding/json"

type RenderRequest struct {
	Format   string          `json:"format" validate:"omitempty,oneof=html markdown text tree"`
	Document json.RawMessage `json:"document"`
}

// PublishWarmupMessage asks the warmup consumer to pre-render a content item.
type PublishWarmupMessage struct {
	Kind string `json:"kind"` // "post" | "job" | "global"
	Key  string `json:"key"`  // slug, or global key
}
