package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// GenerateRequest is the payload sent to the generation service
type GenerateRequest struct {
	Data     string `json:"data"`
	Label    string `json:"label"`
	CodeType string `json:"code_type"`
}

// GenerationLog represents one past generation as recorded by the service
type GenerationLog struct {
	ID        int64     `json:"id" yaml:"id"`
	Filename  string    `json:"filename" yaml:"filename"`
	Data      string    `json:"data" yaml:"data"`
	Label     string    `json:"label" yaml:"label,omitempty"`
	CodeType  string    `json:"code_type" yaml:"code_type"`
	Date      string    `json:"date" yaml:"date"`
	Time      string    `json:"time" yaml:"time"`
	Location  string    `json:"location" yaml:"location"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
	ImageURL  string    `json:"qr_code_url" yaml:"qr_code_url,omitempty"` // null when the service kept no image
}

// GenerateResponse is returned by the service after a generate call
type GenerateResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Log      GenerationLog `json:"log"`
	ImageURL string        `json:"qr_code_url"`
}

// timestampLayouts are tried in order when decoding created_at. The service
// emits RFC 3339 when it is timezone aware and a zone-less form otherwise.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

// Timestamp is a created_at value that tolerates zone-less encodings
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("created_at must be a string: %w", err)
	}
	if raw == nil || *raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, *raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised created_at value %q", *raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(time.RFC3339), nil
}
