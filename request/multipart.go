package request

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"httprpc/argument"
)

// encodeMultipart produces a multipart/form-data body: one part per wire
// pair, then one part per attachment, in declaration order. The boundary
// token is guaranteed not to occur inside any part's content.
func encodeMultipart(pairs []argument.WirePair, attachments *argument.FileSet) ([]byte, string, error) {
	type filePart struct {
		name        string
		filename    string
		contentType string
		content     []byte
	}

	files := make([]filePart, 0, attachments.Len())
	for _, name := range attachments.Names() {
		ref, _ := attachments.Get(name)
		content, err := ref.Read()
		if err != nil {
			return nil, "", &argument.EncodingError{Reason: err.Error()}
		}
		files = append(files, filePart{
			name:        name,
			filename:    ref.Name(),
			contentType: attachmentContentType(ref, content),
			content:     content,
		})
	}

	boundary := uuid.NewString()
	for {
		collision := false
		for _, pair := range pairs {
			if strings.Contains(pair.Name, boundary) || strings.Contains(pair.Value, boundary) {
				collision = true
				break
			}
		}
		for _, f := range files {
			if collision {
				break
			}
			if strings.Contains(f.name, boundary) || strings.Contains(f.filename, boundary) ||
				bytes.Contains(f.content, []byte(boundary)) {
				collision = true
			}
		}
		if !collision {
			break
		}
		boundary = uuid.NewString()
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("failed to set boundary: %w", err)
	}

	for _, pair := range pairs {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, pair.Name))
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write([]byte(pair.Value)); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.name, f.filename))
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// attachmentContentType resolves a part's Content-Type: declared type wins,
// then filename extension, then content sniffing (which itself falls back to
// application/octet-stream).
func attachmentContentType(ref argument.FileReference, content []byte) string {
	if ref.ContentType != "" {
		return ref.ContentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(ref.Name())); byExt != "" {
		return byExt
	}
	return http.DetectContentType(content)
}
