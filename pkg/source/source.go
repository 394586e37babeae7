// Package source abstracts where document text comes from. The
// ingestion pipeline only ever sees plain text, so new origins (urls,
// object storage) plug in without touching persistence.
package source

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"
)

// ContentSource yields the plain text of a document to ingest.
type ContentSource interface {
	// Name identifies the origin for logging and metadata.
	Name() string
	// Text returns the full document body. Implementations must
	// return valid UTF-8.
	Text(ctx context.Context) (string, error)
}

// StringSource wraps text already held in memory, e.g. from a JSON
// request body.
type StringSource struct {
	Label   string
	Content string
}

func NewStringSource(label, content string) *StringSource {
	return &StringSource{Label: label, Content: content}
}

func (s *StringSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "inline"
}

func (s *StringSource) Text(ctx context.Context) (string, error) {
	return s.Content, nil
}

// FileSource reads a plain-text file from disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Text(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("source file %s is not valid utf-8", s.Path)
	}
	return string(data), nil
}

// BytesSource wraps an uploaded payload, e.g. a multipart file part.
type BytesSource struct {
	Filename string
	Data     []byte
}

func NewBytesSource(filename string, data []byte) *BytesSource {
	return &BytesSource{Filename: filename, Data: data}
}

func (s *BytesSource) Name() string {
	if s.Filename != "" {
		return s.Filename
	}
	return "upload"
}

func (s *BytesSource) Text(ctx context.Context) (string, error) {
	if !utf8.Valid(s.Data) {
		return "", fmt.Errorf("upload %s is not valid utf-8", s.Name())
	}
	return string(s.Data), nil
}
