// Package request builds fully-formed HTTP requests from flattened wire
// pairs and attachments.
//
// The encoding strategy is deterministic:
//
//  1. Body-less verb (GET, HEAD, DELETE) → pairs go into the URL query string
//  2. No attachments → application/x-www-form-urlencoded body
//  3. Attachments present → multipart/form-data body
//
// Arguments never appear in both the query string and the body.
package request

import (
	"net/http"
	"net/url"
	"strings"

	"httprpc/argument"
)

// EncodedRequest is a built request ready for authentication and dispatch.
type EncodedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte // nil for body-less verbs
}

// Clone returns a copy with its own header map, so per-request decoration
// never leaks into a shared request.
func (r *EncodedRequest) Clone() *EncodedRequest {
	clone := *r
	clone.Header = r.Header.Clone()
	return &clone
}

// Builder turns wire pairs and attachments into encoded requests. The
// body-less verb set is fixed at construction; a Builder is safe for
// concurrent use.
type Builder struct {
	bodyless map[string]bool
}

// NewBuilder creates a builder. GET, HEAD and DELETE are always body-less;
// extra verbs extend the policy.
func NewBuilder(extraBodyless ...string) *Builder {
	bodyless := map[string]bool{
		http.MethodGet:    true,
		http.MethodHead:   true,
		http.MethodDelete: true,
	}
	for _, verb := range extraBodyless {
		bodyless[strings.ToUpper(verb)] = true
	}
	return &Builder{bodyless: bodyless}
}

// Build produces an encoded request for the given verb and target URL.
// Attachments are only legal with body-carrying verbs.
func (b *Builder) Build(verb string, target *url.URL, pairs []argument.WirePair, attachments *argument.FileSet) (*EncodedRequest, error) {
	verb = strings.ToUpper(verb)

	req := &EncodedRequest{
		Method: verb,
		URL:    cloneURL(target),
		Header: make(http.Header),
	}

	if b.bodyless[verb] {
		if attachments.Len() > 0 {
			return nil, &argument.EncodingError{Reason: "attachments are not allowed with verb " + verb}
		}
		req.URL.RawQuery = encodePairs(pairs)
		return req, nil
	}

	if attachments.Len() == 0 {
		req.Body = []byte(encodePairs(pairs))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	body, contentType, err := encodeMultipart(pairs, attachments)
	if err != nil {
		return nil, err
	}
	req.Body = body
	req.Header.Set("Content-Type", contentType)
	return req, nil
}

func cloneURL(u *url.URL) *url.URL {
	clone := *u
	return &clone
}

// encodePairs serializes wire pairs as name=value joined with "&", in order.
func encodePairs(pairs []argument.WirePair) string {
	var sb strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escape(pair.Name))
		sb.WriteByte('=')
		sb.WriteString(escape(pair.Value))
	}
	return sb.String()
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes everything outside the RFC 3986 unreserved set,
// byte-wise, so non-ASCII text becomes UTF-8 percent sequences. Space is
// %20, never "+", keeping query and body encodings identical.
func escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
			c == '-' || c == '.' || c == '_' || c == '~' {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0x0F])
		}
	}
	return sb.String()
}
