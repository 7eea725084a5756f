package asset

import (
	"encoding/json"
	"fmt"
)

// Asset is a single row returned by the review API.
// Identity is (Name, Relation); every other attribute is kept verbatim in Fields.
type Asset struct {
	Name     string                     `json:"name"`
	Relation string                     `json:"relation"`
	Fields   map[string]json.RawMessage `json:"-"`
}

// Key returns the row key "name-relation".
func (a Asset) Key() string {
	return a.Name + "-" + a.Relation
}

// Field returns a raw attribute by name. Name and relation are not stored in Fields.
func (a Asset) Field(name string) (json.RawMessage, bool) {
	raw, ok := a.Fields[name]
	return raw, ok
}

// UnmarshalJSON decodes name and relation and keeps the remaining attributes.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode asset: %w", err)
	}

	var decoded Asset
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &decoded.Name); err != nil {
			return fmt.Errorf("decode asset name: %w", err)
		}
		delete(raw, "name")
	}
	if v, ok := raw["relation"]; ok {
		if err := json.Unmarshal(v, &decoded.Relation); err != nil {
			return fmt.Errorf("decode asset relation: %w", err)
		}
		delete(raw, "relation")
	}
	if len(raw) > 0 {
		decoded.Fields = raw
	}

	*a = decoded
	return nil
}

// MarshalJSON writes the asset back in its wire shape.
func (a Asset) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Fields)+2)
	for k, v := range a.Fields {
		out[k] = v
	}
	out["name"] = a.Name
	out["relation"] = a.Relation
	return json.Marshal(out)
}

// Less orders assets by identity: name first, then relation.
func Less(a, b Asset) bool {
	return Compare(a, b) < 0
}

// Compare orders assets by identity and returns -1, 0 or 1.
func Compare(a, b Asset) int {
	switch {
	case a.Name < b.Name:
		return -1
	case a.Name > b.Name:
		return 1
	case a.Relation < b.Relation:
		return -1
	case a.Relation > b.Relation:
		return 1
	default:
		return 0
	}
}
