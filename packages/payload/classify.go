package payload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileKeys are field names that always indicate a file upload when the
// value is a string.
var fileKeys = map[string]bool{
	"archive":    true,
	"file":       true,
	"upload":     true,
	"attachment": true,
}

// Classified partitions a payload into file-backed fields and plain form
// fields. The two maps are disjoint and together cover every payload key.
type Classified struct {
	// Files maps field name to the resolved filesystem path.
	Files map[string]string
	// Fields holds the remaining non-file values.
	Fields map[string]any
}

// FileNotFoundError reports a file-reference field whose resolved path
// does not name an existing regular file.
type FileNotFoundError struct {
	Field string
	Path  string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// IsFileReference reports whether a key/value pair should be treated as a
// file upload. A string value qualifies when the key is a well-known
// upload field name, the value looks like an absolute or home-relative
// path, or its last path segment carries an extension. The debug reporter
// uses the same predicate so classification and display never disagree.
func IsFileReference(key string, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if fileKeys[strings.ToLower(key)] {
		return true
	}
	if strings.HasPrefix(s, "~/") || strings.HasPrefix(s, "/") {
		return true
	}
	last := s
	if i := strings.LastIndex(s, "/"); i >= 0 {
		last = s[i+1:]
	}
	return strings.Contains(last, ".")
}

// ExpandPath expands a leading ~ to the invoking user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Classify splits a payload into file uploads and plain fields. Every
// file reference is resolved and verified before anything is returned, so
// a request never goes out with an attachment silently missing.
func Classify(p Payload) (*Classified, error) {
	c := &Classified{
		Files:  make(map[string]string),
		Fields: make(map[string]any),
	}

	for key, value := range p {
		if !IsFileReference(key, value) {
			c.Fields[key] = value
			continue
		}

		path := ExpandPath(value.(string))
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, &FileNotFoundError{Field: key, Path: path}
		}
		c.Files[key] = path
	}

	return c, nil
}

// FileNames returns the file field names in stable order.
func (c *Classified) FileNames() []string {
	return sortedKeys(c.Files)
}

// FieldNames returns the plain field names in stable order.
func (c *Classified) FieldNames() []string {
	return sortedKeys(c.Fields)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
