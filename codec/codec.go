// Package codec turns response bodies into generic value trees.
//
// Decoders are registered per MIME type. The registry strips content-type
// parameters before lookup and hands the charset parameter to the decoder.
// A wildcard subtype ("text/*") matches when no exact entry exists.
package codec

import (
	"fmt"
	"strings"
	"sync"

	"github.com/elnormous/contenttype"
)

// Decoder turns raw body bytes into a decoded value. charset is the
// content-type charset parameter, or "" when absent.
type Decoder interface {
	Decode(data []byte, charset string) (any, error)
}

// DecodeError reports that a body could not be decoded: no decoder is
// registered for the content type, or decoding itself failed.
type DecodeError struct {
	ContentType string
	Cause       error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode %q response: %v", e.ContentType, e.Cause)
	}
	return fmt.Sprintf("no decoder registered for %q", e.ContentType)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Registry maps MIME types to decoders. Lookups are concurrent-safe;
// registration is expected to happen before the registry is shared.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the built-in decoders:
// application/json and text/*.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("application/json", JSONDecoder{})
	r.Register("text/*", TextDecoder{})
	return r
}

// Register maps a MIME type (or a "type/*" wildcard) to a decoder.
func (r *Registry) Register(mimeType string, decoder Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[strings.ToLower(mimeType)] = decoder
}

// Lookup finds the decoder for a MIME type: exact match first, then the
// type's "/*" wildcard.
func (r *Registry) Lookup(mimeType string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mimeType = strings.ToLower(mimeType)
	if d, ok := r.decoders[mimeType]; ok {
		return d, true
	}
	if slash := strings.IndexByte(mimeType, '/'); slash >= 0 {
		if d, ok := r.decoders[mimeType[:slash]+"/*"]; ok {
			return d, true
		}
	}
	return nil, false
}

// Decode parses the content type, dispatches on the MIME type only, and
// applies the registered decoder with the declared charset.
func (r *Registry) Decode(contentType string, body []byte) (any, error) {
	mimeType, charset, err := ParseContentType(contentType)
	if err != nil {
		return nil, &DecodeError{ContentType: contentType, Cause: err}
	}

	decoder, ok := r.Lookup(mimeType)
	if !ok {
		return nil, &DecodeError{ContentType: mimeType}
	}

	value, err := decoder.Decode(body, charset)
	if err != nil {
		return nil, &DecodeError{ContentType: mimeType, Cause: err}
	}
	return value, nil
}

// ParseContentType extracts the bare MIME type (the dispatch key) and the
// charset parameter from a Content-Type header value.
func ParseContentType(contentType string) (mimeType, charset string, err error) {
	mediaType, parseErr := contenttype.ParseMediaType(contentType)
	if parseErr != nil {
		return "", "", parseErr
	}
	return mediaType.Type + "/" + mediaType.Subtype, mediaType.Parameters["charset"], nil
}
