// Package source loads comment lists from JSON or YAML files and watches them
// for changes.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/threads/internal/core/logging"
	"github.com/colonyops/threads/internal/core/thread"
)

// Format is a supported comment file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported comment file format")

// document is the wrapped form of a comment file. A bare list is accepted too.
type document struct {
	Comments []thread.Comment `json:"comments" yaml:"comments"`
}

// DetectFormat infers the format from a file name.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}

// sniff guesses the format of unnamed input such as piped stdin.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFile reads and decodes the comment file at path.
func LoadFile(ctx context.Context, path string) ([]thread.Comment, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open comments: %w", err)
	}
	defer func() { _ = f.Close() }()

	comments, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	log := logging.Component("source")
	log.Debug().
		Ctx(logging.WithSource(ctx, path)).
		Int("comments", len(comments)).
		Msg("loaded comments")

	return comments, nil
}

// Decode reads a comment list in the given format. An empty format sniffs
// the input.
func Decode(r io.Reader, format Format) ([]thread.Comment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []thread.Comment{}, nil
	}

	if format == "" {
		format = sniff(data)
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

// DecodeNamed decodes r using the format implied by name, falling back to
// sniffing when name has no recognised extension.
func DecodeNamed(r io.Reader, name string) ([]thread.Comment, error) {
	format, err := DetectFormat(name)
	if err != nil {
		format = ""
	}
	return Decode(r, format)
}

func decodeJSON(data []byte) ([]thread.Comment, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []thread.Comment
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		return list, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return nonNil(doc.Comments), nil
}

func decodeYAML(data []byte) ([]thread.Comment, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var list []thread.Comment
		if err := node.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
		return list, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return nonNil(doc.Comments), nil
}

func nonNil(c []thread.Comment) []thread.Comment {
	if c == nil {
		return []thread.Comment{}
	}
	return c
}
