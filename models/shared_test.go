package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalInt_Decoding(t *testing.T) {
	var doc struct {
		Pax OptionalInt `json:"pax"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"pax":3}`), &doc))
	require.NotNil(t, doc.Pax.Value)
	assert.Equal(t, 3, *doc.Pax.Value)

	doc.Pax = OptionalInt{}
	require.NoError(t, json.Unmarshal([]byte(`{"pax":"tres"}`), &doc))
	assert.Nil(t, doc.Pax.Value)

	doc.Pax = OptionalInt{}
	require.NoError(t, json.Unmarshal([]byte(`{"pax":null}`), &doc))
	assert.Nil(t, doc.Pax.Value)
}

func TestOptionalFloat_Decoding(t *testing.T) {
	var doc struct {
		Budget OptionalFloat `json:"budget"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"budget":599.99}`), &doc))
	require.NotNil(t, doc.Budget.Value)
	assert.Equal(t, 599.99, *doc.Budget.Value)

	doc.Budget = OptionalFloat{}
	require.NoError(t, json.Unmarshal([]byte(`{"budget":{}}`), &doc))
	assert.Nil(t, doc.Budget.Value)

	prev := 120.0
	doc.Budget = OptionalFloat{Value: &prev}
	require.NoError(t, json.Unmarshal([]byte(`{"budget":null}`), &doc))
	assert.Nil(t, doc.Budget.Value)
}

func TestOptional_RoundTrip(t *testing.T) {
	n := 4
	out, err := json.Marshal(OptionalInt{Value: &n})
	require.NoError(t, err)
	assert.Equal(t, "4", string(out))

	out, err = json.Marshal(OptionalInt{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
