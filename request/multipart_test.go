package request

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"testing"

	"httprpc/argument"
)

func buildMultipart(t *testing.T, pairs []argument.WirePair, files *argument.FileSet) *EncodedRequest {
	t.Helper()
	b := NewBuilder()
	u, _ := url.Parse("http://localhost/upload")
	req, err := b.Build("POST", u, pairs, files)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestMultipartRoundTrip(t *testing.T) {
	pairs := []argument.WirePair{
		{Name: "comment", Value: "first\nsecond"},
		{Name: "tag", Value: "a"},
		{Name: "tag", Value: "b"},
	}
	files := argument.NewFileSet().Set("upload", argument.FileReference{
		Content:     []byte("file contents"),
		Filename:    "notes.txt",
		ContentType: "text/plain",
	})

	req := buildMultipart(t, pairs, files)

	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("unexpected media type %q", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])

	type part struct {
		name, filename, contentType, body string
	}
	var parts []part
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(p)
		parts = append(parts, part{p.FormName(), p.FileName(), p.Header.Get("Content-Type"), string(body)})
	}

	want := []part{
		{"comment", "", "", "first\nsecond"},
		{"tag", "", "", "a"},
		{"tag", "", "", "b"},
		{"upload", "notes.txt", "text/plain", "file contents"},
	}
	if len(parts) != len(want) {
		t.Fatalf("expect %d parts, got %d", len(want), len(parts))
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d: expect %+v, got %+v", i, want[i], parts[i])
		}
	}
}

func TestMultipartBoundaryAbsentFromContent(t *testing.T) {
	pairs := []argument.WirePair{{Name: "a", Value: "some value"}}
	files := argument.NewFileSet().Set("f", argument.FileReference{
		Content:  bytes.Repeat([]byte("0123456789abcdef-"), 64),
		Filename: "blob.bin",
	})

	req := buildMultipart(t, pairs, files)

	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	boundary := params["boundary"]
	if boundary == "" {
		t.Fatal("missing boundary parameter")
	}

	if strings.Contains("some value", boundary) {
		t.Fatal("boundary collides with a field value")
	}
	ref, _ := files.Get("f")
	if bytes.Contains(ref.Content, []byte(boundary)) {
		t.Fatal("boundary collides with file content")
	}
}

func TestAttachmentContentTypeSniffing(t *testing.T) {
	// Declared type wins.
	declared := attachmentContentType(argument.FileReference{ContentType: "image/png"}, nil)
	if declared != "image/png" {
		t.Fatalf("expect declared type, got %q", declared)
	}

	// Extension-based guess.
	byExt := attachmentContentType(argument.FileReference{Filename: "report.json"}, []byte("{}"))
	if !strings.HasPrefix(byExt, "application/json") {
		t.Fatalf("expect application/json, got %q", byExt)
	}

	// Sniffed fallback for unknown extensions.
	sniffed := attachmentContentType(argument.FileReference{Filename: "blob.unknownext"}, []byte{0x00, 0x01, 0x02, 0x03})
	if sniffed != "application/octet-stream" {
		t.Fatalf("expect application/octet-stream, got %q", sniffed)
	}
}

func TestMultipartMissingFile(t *testing.T) {
	files := argument.NewFileSet().Set("f", argument.FileReference{Path: "/nonexistent/file.bin"})

	b := NewBuilder()
	u, _ := url.Parse("http://localhost/upload")
	_, err := b.Build("POST", u, nil, files)
	if err == nil {
		t.Fatal("expect error for unreadable attachment")
	}
}
