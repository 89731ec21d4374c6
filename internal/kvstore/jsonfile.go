package kvstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// emptyObject is written when the database file does not exist yet.
var emptyObject = []byte("{}")

// JSONFile stores the mapping as a single JSON object in one file.
type JSONFile struct {
	path string
}

// NewJSONFile returns a repository backed by the JSON file at path.
// The file is not touched until Load or Save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the database file path.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads and validates the database file.
// A missing file is created containing an empty object.
func (f *JSONFile) Load() (Mapping, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("creating empty database", "path", f.path)
			if err := os.WriteFile(f.path, emptyObject, 0644); err != nil {
				return nil, fmt.Errorf("creating database: %w", err)
			}
			return Mapping{}, nil
		}
		return nil, fmt.Errorf("reading database: %w", err)
	}

	return decodeMapping(f.path, data)
}

// Save overwrites the database file with m.
func (f *JSONFile) Save(m Mapping) error {
	if m == nil {
		m = Mapping{}
	}
	data, err := encodeMapping(m)
	if err != nil {
		return fmt.Errorf("encoding database: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("writing database: %w", err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (f *JSONFile) Close() error {
	return nil
}

// encodeMapping renders m as compact JSON without HTML escaping or a trailing newline.
func encodeMapping(m Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// decodeMapping parses data as a JSON object whose members are all strings.
// Zero-length content is an empty mapping; whitespace alone is not.
func decodeMapping(path string, data []byte) (Mapping, error) {
	if len(data) == 0 {
		return Mapping{}, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptError{Path: path, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &CorruptError{Path: path, Reason: "not a map"}
	}

	m := make(Mapping, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, &CorruptError{Path: path, Reason: fmt.Sprintf("bad map: value for %q is not a string", k)}
		}
		m[k] = s
	}
	return m, nil
}
