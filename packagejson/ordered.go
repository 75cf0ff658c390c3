/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package packagejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Kind discriminates OrderedValue variants.
type Kind int

const (
	// KindString is a JSON string.
	KindString Kind = iota
	// KindArray is a JSON array.
	KindArray
	// KindMap is a JSON object with declared key order preserved.
	KindMap
	// KindNull is a JSON null.
	KindNull
	// KindOther is any other JSON value (number, bool).
	KindOther
)

// OrderedValue is a JSON value that preserves object key order.
// encoding/json maps discard order, which breaks condition objects:
// their keys are matched in declaration order.
type OrderedValue struct {
	Kind Kind

	// Str holds the value for KindString.
	Str string

	// Arr holds the elements for KindArray.
	Arr []*OrderedValue

	// Keys holds the object keys for KindMap, in declaration order.
	Keys []string

	// Map holds the object values for KindMap.
	Map map[string]*OrderedValue
}

// DecodeOrdered decodes JSON data into an OrderedValue tree using a
// token walk.
func DecodeOrdered(data []byte) (*OrderedValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeOrderedValue(dec)
	if err != nil {
		return nil, err
	}

	// Anything after the first value is malformed.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data")
	}
	return value, nil
}

func decodeOrderedValue(dec *json.Decoder) (*OrderedValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeOrderedToken(dec, tok)
}

func decodeOrderedToken(dec *json.Decoder, tok json.Token) (*OrderedValue, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			value := &OrderedValue{Kind: KindMap, Map: make(map[string]*OrderedValue)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				child, err := decodeOrderedValue(dec)
				if err != nil {
					return nil, err
				}
				if _, seen := value.Map[key]; !seen {
					value.Keys = append(value.Keys, key)
				}
				value.Map[key] = child
			}
			// consume '}'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value, nil
		case '[':
			value := &OrderedValue{Kind: KindArray}
			for dec.More() {
				child, err := decodeOrderedValue(dec)
				if err != nil {
					return nil, err
				}
				value.Arr = append(value.Arr, child)
			}
			// consume ']'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return value, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return &OrderedValue{Kind: KindString, Str: t}, nil
	case nil:
		return &OrderedValue{Kind: KindNull}, nil
	default:
		return &OrderedValue{Kind: KindOther}, nil
	}
}
