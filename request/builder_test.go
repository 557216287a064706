package request

import (
	"errors"
	"net/url"
	"testing"

	"httprpc/argument"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestBuildQueryString(t *testing.T) {
	b := NewBuilder()

	pairs := []argument.WirePair{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}, {Name: "b", Value: "3"}}
	req, err := b.Build("GET", mustURL(t, "http://localhost/math/sum"), pairs, nil)
	if err != nil {
		t.Fatal(err)
	}

	if req.URL.RawQuery != "a=1&b=2&b=3" {
		t.Fatalf("expect query a=1&b=2&b=3, got %q", req.URL.RawQuery)
	}
	if req.Body != nil {
		t.Fatal("expect no body for GET")
	}
}

func TestBuildQueryEscaping(t *testing.T) {
	b := NewBuilder()

	pairs := []argument.WirePair{{Name: "text", Value: "héllo world&more=1"}}
	req, err := b.Build("GET", mustURL(t, "http://localhost/echo"), pairs, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Space is %20 (never "+"), non-ASCII is UTF-8 byte-wise, reserved
	// characters are escaped.
	want := "text=h%C3%A9llo%20world%26more%3D1"
	if req.URL.RawQuery != want {
		t.Fatalf("expect %q, got %q", want, req.URL.RawQuery)
	}
}

func TestBuildURLEncodedBody(t *testing.T) {
	b := NewBuilder()

	pairs := []argument.WirePair{{Name: "a", Value: "1"}, {Name: "b", Value: "two words"}}
	req, err := b.Build("POST", mustURL(t, "http://localhost/items"), pairs, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := req.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", got)
	}
	if string(req.Body) != "a=1&b=two%20words" {
		t.Fatalf("unexpected body %q", string(req.Body))
	}
	if req.URL.RawQuery != "" {
		t.Fatal("arguments must not appear in both query and body")
	}
}

func TestBuildRejectsAttachmentsWithBodylessVerb(t *testing.T) {
	b := NewBuilder()

	files := argument.NewFileSet().Set("photo", argument.FileReference{
		Content:  []byte("png bytes"),
		Filename: "photo.png",
	})

	_, err := b.Build("GET", mustURL(t, "http://localhost/upload"), nil, files)

	var encErr *argument.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expect EncodingError, got %v", err)
	}
}

func TestBuildBodylessPolicy(t *testing.T) {
	b := NewBuilder("PURGE")

	req, err := b.Build("purge", mustURL(t, "http://localhost/cache"), []argument.WirePair{{Name: "key", Value: "k"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if req.Method != "PURGE" {
		t.Fatalf("expect verb PURGE, got %q", req.Method)
	}
	if req.URL.RawQuery != "key=k" || req.Body != nil {
		t.Fatal("designated body-less verb must encode into the query string")
	}
}

func TestBuildDoesNotMutateTarget(t *testing.T) {
	b := NewBuilder()
	target := mustURL(t, "http://localhost/math/sum")

	_, err := b.Build("GET", target, []argument.WirePair{{Name: "a", Value: "1"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if target.RawQuery != "" {
		t.Fatal("builder mutated the caller's URL")
	}
}
