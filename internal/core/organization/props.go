// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// # Custom Properties

// Kind discriminates the payload carried by a [Value].
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindObject
	KindList
)

// Value is one custom property: exactly one of the payload fields is set,
// selected by Kind. The closed set of kinds keeps property payloads
// serializable and comparable without reflection.
type Value struct {
	Kind   Kind
	Str    string
	Num    float64
	Bool   bool
	Object map[string]Value
	List   []Value
}

// Props is the custom property bag attached to an organization, persisted
// as a single JSONB column.
type Props map[string]Value

// # Constructors

func String(s string) Value          { return Value{Kind: KindString, Str: s} }
func Number(n float64) Value         { return Value{Kind: KindNumber, Num: n} }
func Bool(b bool) Value              { return Value{Kind: KindBool, Bool: b} }
func Object(m map[string]Value) Value { return Value{Kind: KindObject, Object: m} }
func List(items ...Value) Value      { return Value{Kind: KindList, List: items} }

// # JSON Codec

// MarshalJSON writes the natural JSON form of the payload: a string value
// becomes a JSON string, an object value a JSON object, and so on. The kind
// tag is implicit in the JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindObject:
		if v.Object == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.Object)
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return nil, fmt.Errorf("organization: unknown property kind %d", v.Kind)
}

// UnmarshalJSON classifies the JSON type back into a kind. null and any
// other unsupported payload are rejected rather than silently coerced.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return err
	}

	decoded, err := fromAny(raw)
	if err != nil {
		return err
	}

	*v = decoded
	return nil
}

// fromAny converts a decoded JSON value into a typed [Value].
func fromAny(raw any) (Value, error) {
	switch typed := raw.(type) {
	case string:
		return String(typed), nil
	case json.Number:
		n, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("organization: invalid number property: %w", err)
		}
		return Number(n), nil
	case bool:
		return Bool(typed), nil
	case map[string]any:
		object := make(map[string]Value, len(typed))
		for key, item := range typed {
			value, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			object[key] = value
		}
		return Object(object), nil
	case []any:
		list := make([]Value, 0, len(typed))
		for _, item := range typed {
			value, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			list = append(list, value)
		}
		return Value{Kind: KindList, List: list}, nil
	}
	return Value{}, fmt.Errorf("organization: unsupported property payload %T", raw)
}
