package codec

import (
	"fmt"

	"golang.org/x/text/encoding/htmlindex"
)

// TextDecoder decodes a text/* body to a plain string, honoring the
// charset parameter.
type TextDecoder struct{}

func (TextDecoder) Decode(data []byte, charset string) (any, error) {
	return decodeCharset(data, charset)
}

// decodeCharset converts body bytes to a UTF-8 string. An empty charset
// means UTF-8 already.
func decodeCharset(data []byte, charset string) (string, error) {
	if charset == "" {
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %q text: %w", charset, err)
	}
	return string(decoded), nil
}
