package source

import (
	"bytes"
	"mime"
	"path"
	"strings"
)

// Format is the encoding of a document body.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is a fetched body together with its origin.
type Document struct {
	Ref    Ref
	Format Format
	Data   []byte
}

// NewDocument wraps data fetched from ref. mediaType is the Content-Type the
// server reported, or "" for local reads.
func NewDocument(ref Ref, data []byte, mediaType string) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, ErrEmptyDocument
	}
	return Document{
		Ref:    ref,
		Format: DetectFormat(ref.Location, mediaType, data),
		Data:   data,
	}, nil
}

// DetectFormat picks the body encoding from the media type, then the file
// extension, then the first significant byte.
func DetectFormat(location, mediaType string, data []byte) Format {
	if mediaType != "" {
		if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
			switch {
			case strings.HasSuffix(parsed, "json"):
				return FormatJSON
			case strings.HasSuffix(parsed, "yaml"), strings.HasSuffix(parsed, "yml"):
				return FormatYAML
			}
		}
	}

	switch strings.ToLower(path.Ext(stripQuery(location))) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func stripQuery(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}
