package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Worker is a person tasks can be assigned to.
// Fields the client does not model are kept in Extra so they survive a
// decode/encode round trip through the cache and the API.
type Worker struct {
	ID    string
	Name  string
	Role  string
	Extra map[string]json.RawMessage
}

// GetID returns the worker identifier
func (w Worker) GetID() string { return w.ID }

// MarshalJSON flattens Extra next to the known fields. A non-empty Name or
// Role wins over a raw value of the same key held in Extra.
func (w Worker) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(w.Extra)+3)
	for k, v := range w.Extra {
		out[k] = v
	}
	out["id"] = w.ID
	if w.Name != "" {
		out["name"] = w.Name
	}
	if w.Role != "" {
		out["role"] = w.Role
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the known fields and stashes everything else in Extra.
// A name or role that is not a non-empty string stays in Extra verbatim, so
// it is written back exactly as received.
func (w *Worker) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Worker
	if value, ok := raw["id"]; ok {
		if err := json.Unmarshal(value, &decoded.ID); err != nil {
			return fmt.Errorf("worker id: %w", err)
		}
		delete(raw, "id")
	}
	for field, target := range map[string]*string{"name": &decoded.Name, "role": &decoded.Role} {
		value, ok := raw[field]
		if !ok {
			continue
		}
		var str string
		if err := json.Unmarshal(value, &str); err != nil || str == "" {
			continue
		}
		*target = str
		delete(raw, field)
	}
	if len(raw) > 0 {
		decoded.Extra = raw
	}

	*w = decoded
	return nil
}

// Clone returns a copy whose Extra map can be modified independently
func (w Worker) Clone() Worker {
	c := w
	if w.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(w.Extra))
		for k, v := range w.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return c
}
