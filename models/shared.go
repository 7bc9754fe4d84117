package models

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// OptionalInt decodes a JSON number into an *int. Anything that is not a
// usable number (null, strings, objects, garbage) decodes to nil instead of
// failing the whole payload.
type OptionalInt struct {
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	// json.Unmarshal treats null as a no-op, which would leave a pointer
	// to zero behind. Null means absent here.
	if bytes.Equal(data, jsonNull) {
		o.Value = nil
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		o.Value = nil
		return nil
	}
	o.Value = &n
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// OptionalFloat is the float64 counterpart of OptionalInt.
type OptionalFloat struct {
	Value *float64
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		o.Value = nil
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		o.Value = nil
		return nil
	}
	o.Value = &f
	return nil
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
