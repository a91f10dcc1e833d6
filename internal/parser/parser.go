package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Parser turns a file's content into rows.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) ([]Row, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates no registered parser accepts the file.
var ErrUnsupported = errors.New("unsupported dataset format")

// Supports reports whether a registered parser accepts filename.
func Supports(filename string) bool {
	return lookup(filename) != nil
}

// ParseBytes parses content using the parser registered for filename.
func ParseBytes(filename string, content []byte) ([]Row, error) {
	p := lookup(filename)
	if p == nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), ErrUnsupported)
	}
	return p.Parse(content)
}

// ParseFile reads path and parses it with the matching parser.
func ParseFile(path string) ([]Row, error) {
	if !Supports(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseBytes(path, data)
}

func lookup(filename string) Parser {
	for _, p := range registry {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func init() {
	Register(csvParser{})
}
