package render

import (
	"encoding/json"
	"io"
)

// JSON writes one JSON object per slot, newline delimited.
type JSON struct {
	enc *json.Encoder
}

type jsonSlot struct {
	Slot    string      `json:"slot"`
	Value   interface{} `json:"value,omitempty"`
	Empty   bool        `json:"empty,omitempty"`
	Message string      `json:"message,omitempty"`
}

// NewJSON returns a sink writing to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(out)}
}

// Render writes {"slot": slot, "value": value}.
func (j *JSON) Render(slot string, value interface{}) error {
	return j.enc.Encode(jsonSlot{Slot: slot, Value: value})
}

// RenderEmpty writes {"slot": slot, "empty": true, "message": message}.
func (j *JSON) RenderEmpty(slot, message string) error {
	return j.enc.Encode(jsonSlot{Slot: slot, Empty: true, Message: message})
}
