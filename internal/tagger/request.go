package tagger

import (
	"encoding/json"
	"fmt"
)

// Request asks for one tag to be applied to one instance.
type Request struct {
	InstanceID string `json:"instance_id"`
	TagKey     string `json:"tag_key"`
	TagValue   string `json:"tag_value"`
}

// wire form; pointers tell absent fields apart from present ones
type rawRequest struct {
	InstanceID *string `json:"instance_id"`
	TagKey     *string `json:"tag_key"`
	TagValue   *string `json:"tag_value"`
}

// DecodeRequest parses an invocation payload. Absent, null or empty fields
// yield a *MissingFieldError; non-string values are rejected as-is.
func DecodeRequest(payload []byte) (Request, error) {
	var raw rawRequest
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Request{}, fmt.Errorf("decoding tag request: %w", err)
	}

	r := Request{
		InstanceID: deref(raw.InstanceID),
		TagKey:     deref(raw.TagKey),
		TagValue:   deref(raw.TagValue),
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// Validate reports every required field left empty.
func (r Request) Validate() error {
	var missing []string
	if r.InstanceID == "" {
		missing = append(missing, "instance_id")
	}
	if r.TagKey == "" {
		missing = append(missing, "tag_key")
	}
	if r.TagValue == "" {
		missing = append(missing, "tag_value")
	}
	if len(missing) != 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
