// Package source reads the documents a form is built from: schema
// declarations (YAML or JSON), entity records that seed field defaults and
// OpenAPI descriptions. A Ref names a document on disk, inside an fs.FS or
// behind an HTTP(S) URL; a Fetcher turns a Ref into a Document.
//
//	fetcher := formstate.NewFetcher(source.WithRemote(5 * time.Second))
//	ref, _ := source.Parse("https://store.example.com/plans/42.json")
//	seed, err := source.LoadRecord(ctx, fetcher, ref)
//	o := formstate.NewOrchestrator(orchestrator.WithDecorators(seed))
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidRef reports a reference that names no readable location.
	ErrInvalidRef = errors.New("source: invalid reference")
	// ErrRemoteDisabled is returned for URL refs when the fetcher was built
	// without remote access.
	ErrRemoteDisabled = errors.New("source: remote documents are disabled")
	// ErrNoFileSystem is returned for fs refs when no fs.FS was configured.
	ErrNoFileSystem = errors.New("source: no file system configured")
	// ErrTooLarge is returned when a document exceeds the configured size.
	ErrTooLarge = errors.New("source: document exceeds size limit")
	// ErrUnexpectedStatus wraps non-2xx HTTP responses.
	ErrUnexpectedStatus = errors.New("source: unexpected HTTP status")
	// ErrEmptyDocument is returned for zero-length documents.
	ErrEmptyDocument = errors.New("source: document is empty")
)

// Fetcher reads the document a Ref points to.
type Fetcher interface {
	Fetch(ctx context.Context, ref Ref) (Document, error)
}

// Kind says where a Ref is resolved.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

// Ref names one document.
type Ref struct {
	Kind     Kind
	Location string
}

// File refers to a path on the local disk.
func File(path string) Ref {
	return Ref{Kind: KindFile, Location: filepath.Clean(path)}
}

// FS refers to an entry of the fetcher's fs.FS. Names use forward slashes.
func FS(name string) Ref {
	return Ref{Kind: KindFS, Location: strings.TrimPrefix(name, "/")}
}

// URL refers to an http or https document.
func URL(raw string) (Ref, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrInvalidRef, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Ref{}, fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidRef, raw)
	}
	return Ref{Kind: KindURL, Location: u.String()}, nil
}

// Parse reads a command-line style reference: http(s) URLs become URL refs,
// "fs:name" becomes an FS ref and anything else is a file path.
func Parse(raw string) (Ref, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Ref{}, fmt.Errorf("%w: empty reference", ErrInvalidRef)
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return URL(trimmed)
	case strings.HasPrefix(trimmed, "fs:"):
		return FS(strings.TrimPrefix(trimmed, "fs:")), nil
	default:
		return File(trimmed), nil
	}
}

// Remote reports whether fetching the ref needs network access.
func (r Ref) Remote() bool { return r.Kind == KindURL }

func (r Ref) String() string {
	return string(r.Kind) + ":" + r.Location
}
