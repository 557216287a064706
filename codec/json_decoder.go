package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// JSONDecoder parses a JSON body into a generic value tree:
// objects → *Object (insertion-ordered), arrays → []any, numbers →
// json.Number (original form preserved), strings, booleans, nil.
type JSONDecoder struct{}

func (JSONDecoder) Decode(data []byte, charset string) (any, error) {
	text, err := decodeCharset(data, charset)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	value, err := readValue(dec)
	if err != nil {
		return nil, err
	}

	// Anything after the first value is garbage.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}

	return value, nil
}

// readValue consumes one JSON value from the token stream. The standard
// decoder's map[string]any would lose object key order, which the value
// tree preserves, so objects are assembled token by token.
func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool, or nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			value, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil

	case '[':
		list := make([]any, 0)
		for dec.More() {
			value, err := readValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return list, nil
	}

	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}
