package dto

import "encoding/json"

// PreviewMessage is sent by an editor over the preview socket.
type PreviewMessage struct {
	Id       string          `json:"id"`
	Format   string          `json:"format"`
	Document json.RawMessage `json:"document"`
}

// PreviewEvent is pushed to editors: a render reply or a publish notice.
type PreviewEvent struct {
	Type  string      `json:"type"` // "rendered" | "published" | "error"
	Id    string      `json:"id,omitempty"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}
