// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/centra/internal/core/organization"
)

/*
TestProps_RoundTrip verifies that every property kind survives an
encode/decode cycle with its kind discriminator intact.
*/
func TestProps_RoundTrip(t *testing.T) {
	props := organization.Props{
		"region":       organization.String("eu-west"),
		"max_seats":    organization.Number(250),
		"trial":        organization.Bool(false),
		"contact":      organization.Object(map[string]organization.Value{"phone": organization.String("+49 30 1234")}),
		"office_days":  organization.List(organization.String("mon"), organization.String("thu")),
	}

	encoded, err := json.Marshal(props)
	require.NoError(t, err)

	var decoded organization.Props
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, organization.KindString, decoded["region"].Kind)
	assert.Equal(t, "eu-west", decoded["region"].Str)

	assert.Equal(t, organization.KindNumber, decoded["max_seats"].Kind)
	assert.Equal(t, 250.0, decoded["max_seats"].Num)

	assert.Equal(t, organization.KindBool, decoded["trial"].Kind)
	assert.False(t, decoded["trial"].Bool)

	require.Equal(t, organization.KindObject, decoded["contact"].Kind)
	assert.Equal(t, "+49 30 1234", decoded["contact"].Object["phone"].Str)

	require.Equal(t, organization.KindList, decoded["office_days"].Kind)
	require.Len(t, decoded["office_days"].List, 2)
	assert.Equal(t, "thu", decoded["office_days"].List[1].Str)
}

/*
TestValue_DecodeClassification verifies the JSON-type-to-kind mapping for
payloads arriving from API clients.
*/
func TestValue_DecodeClassification(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want organization.Kind
	}{
		{"string", `"hello"`, organization.KindString},
		{"integer", `42`, organization.KindNumber},
		{"float", `3.14`, organization.KindNumber},
		{"bool", `true`, organization.KindBool},
		{"object", `{"a":1}`, organization.KindObject},
		{"nested_object", `{"a":{"b":"c"}}`, organization.KindObject},
		{"list", `[1,"two",false]`, organization.KindList},
		{"empty_list", `[]`, organization.KindList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var value organization.Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &value))
			assert.Equal(t, tt.want, value.Kind)
		})
	}
}

/*
TestValue_RejectsNull verifies null payloads are refused instead of being
coerced into a zero value.
*/
func TestValue_RejectsNull(t *testing.T) {
	var value organization.Value
	assert.Error(t, json.Unmarshal([]byte(`null`), &value))
}

/*
TestValue_MixedList verifies heterogeneous lists keep per-element kinds.
*/
func TestValue_MixedList(t *testing.T) {
	var value organization.Value
	require.NoError(t, json.Unmarshal([]byte(`["a", 1, {"k": true}]`), &value))

	require.Equal(t, organization.KindList, value.Kind)
	require.Len(t, value.List, 3)
	assert.Equal(t, organization.KindString, value.List[0].Kind)
	assert.Equal(t, organization.KindNumber, value.List[1].Kind)
	assert.Equal(t, organization.KindObject, value.List[2].Kind)
	assert.True(t, value.List[2].Object["k"].Bool)
}
