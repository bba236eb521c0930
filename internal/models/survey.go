package models

import (
	"encoding/json"
	"time"
)

// Survey is one author's stored survey row. Questions holds the wire-form
// question array exactly as it is serialized into the jsonb column.
type Survey struct {
	ID            int64
	CreatedAt     time.Time
	Author        string
	Title         string
	TitleContents string
	Questions     json.RawMessage
}
