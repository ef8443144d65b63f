package handlers

import "encoding/json"

// Nullable distinguishes a JSON field that was omitted from one that was
// explicitly set to null. Update inputs use it for fields where null is a
// meaningful value (clearing an excerpt, detaching a category).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON records that the field was present. A literal null
// leaves Value nil.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON round-trips the wrapped value; an unset or null field
// serializes as null.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
