package dto

import (
	"encoding/json"
	"time"
)

type PutGlobalRequest struct {
	Key  string
	Data json.RawMessage `json:"data" validate:"required"`
}

// PatchGlobalRequest carries an RFC 7386 merge patch as the raw request body.
type PatchGlobalRequest struct {
	Key   string
	Patch []byte
}

type GlobalResponse struct {
	Key       string                 `json:"key"`
	Data      map[string]interface{} `json:"data"`
	UpdatedAt *time.Time             `json:"updated_at"`
}
