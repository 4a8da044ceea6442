package models

import "encoding/json"

// OptionalID is a JSON field that distinguishes three states a plain
// pointer cannot: absent from the payload, explicit null, and a value.
// The zero value means absent.
type OptionalID struct {
	Present bool
	Valid   bool
	ID      int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}

	if err := json.Unmarshal(data, &o.ID); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Present || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.ID)
}
