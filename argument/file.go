package argument

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileReference locates the bytes for one attachment: either in-memory
// content or a local file path. Filename and ContentType are optional; the
// request builder derives them when empty.
type FileReference struct {
	Path        string // local file path; ignored when Content is set
	Content     []byte // in-memory content; takes precedence over Path
	Filename    string // declared filename; defaults to the base of Path
	ContentType string // declared MIME type; sniffed when empty
}

// Name returns the filename to declare on the wire.
func (r FileReference) Name() string {
	if r.Filename != "" {
		return r.Filename
	}
	return filepath.Base(r.Path)
}

// Read loads the referenced bytes.
func (r FileReference) Read() ([]byte, error) {
	if r.Content != nil {
		return r.Content, nil
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment %q: %w", r.Path, err)
	}
	return data, nil
}

// FileSet is an insertion-ordered mapping from attachment field name to a
// file reference. Setting an existing name replaces the reference in place.
type FileSet struct {
	names []string
	files map[string]FileReference
}

// NewFileSet creates an empty attachment set.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string]FileReference)}
}

// Set adds or replaces the file under name. Returns the set for chaining.
func (s *FileSet) Set(name string, ref FileReference) *FileSet {
	if _, ok := s.files[name]; !ok {
		s.names = append(s.names, name)
	}
	s.files[name] = ref
	return s
}

// Get returns the file reference under name.
func (s *FileSet) Get(name string) (FileReference, bool) {
	ref, ok := s.files[name]
	return ref, ok
}

// Names returns the field names in insertion order.
func (s *FileSet) Names() []string {
	return s.names
}

// Len returns the number of attachments. A nil set is empty.
func (s *FileSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
