package uevent

import (
	"os"
	"strings"
)

// Record maps field names, as they appear in the status file, to their raw
// values.
type Record map[string]string

// Lookup returns the raw value of key, or the key's default literal when the
// field is absent.
func (r Record) Lookup(key string) string {
	if v, ok := r[key]; ok {
		return v
	}
	return Default(key)
}

// ReadRecord reads the status file at path and parses it.
func ReadRecord(path string) (Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: ErrIO, Path: path, Err: err}
	}
	return ParseRecord(string(b)), nil
}

// ParseRecord splits text into KEY=VALUE lines. Lines without a separator,
// or with an empty key, are skipped. When a key repeats, the last value wins.
func ParseRecord(text string) Record {
	r := make(Record)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		r[key] = strings.TrimSpace(value)
	}
	return r
}
