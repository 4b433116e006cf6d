// Package docstore reads and overwrites the JSON document on disk.
//
// A store reads its input path once and writes the whole document to its
// output path in a single call. No temporary or backup file is created.
package docstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"facultynotes/internal/record"
)

var (
	// ErrNotFound means the input path does not exist or cannot be read.
	ErrNotFound = errors.New("docstore: file not found")
	// ErrMalformed means the input is not valid JSON.
	ErrMalformed = errors.New("docstore: malformed JSON")
)

// FileStore loads from one path and saves to another (usually the same).
type FileStore struct {
	input  string
	output string
}

// New creates a store. An empty output means "overwrite the input".
func New(input, output string) *FileStore {
	if output == "" {
		output = input
	}
	return &FileStore{input: input, output: output}
}

// InputPath returns the path documents are read from.
func (s *FileStore) InputPath() string { return s.input }

// OutputPath returns the path documents are written to.
func (s *FileStore) OutputPath() string { return s.output }

// Load reads and decodes the input file.
func (s *FileStore) Load() (record.Document, error) {
	data, err := os.ReadFile(s.input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("docstore: read %s: %w", s.input, err)
	}
	doc, err := record.Decode(data)
	if err != nil {
		if errors.Is(err, record.ErrSyntax) {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, s.input, err)
		}
		return nil, fmt.Errorf("docstore: decode %s: %w", s.input, err)
	}
	return doc, nil
}

// Save encodes doc and overwrites the output file.
func (s *FileStore) Save(doc record.Document) error {
	data, err := record.Encode(doc)
	if err != nil {
		return fmt.Errorf("docstore: encode %s: %w", s.output, err)
	}
	if err := os.WriteFile(s.output, data, 0o644); err != nil {
		return fmt.Errorf("docstore: write %s: %w", s.output, err)
	}
	return nil
}
