package entity

import (
	"encoding/json"
	"time"
)

// Global is a keyed site-wide document such as the header, footer or contact block.
// Data is a JSON object; string or object values holding rich-text documents are
// rendered when the global is read.
type Global struct {
	Key       string
	Data      json.RawMessage
	UpdatedAt *time.Time
}
