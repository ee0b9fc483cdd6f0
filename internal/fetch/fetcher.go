// Package fetch implements source.Fetcher over the local disk, an fs.FS and
// HTTP(S).
package fetch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/source"
)

// Fetcher reads documents for every source.Kind. URL refs need a client,
// either supplied or enabled through source.WithRemote.
type Fetcher struct {
	fsys    fs.FS
	client  *http.Client
	header  http.Header
	maxSize int64
	logger  *zap.Logger
}

var _ source.Fetcher = (*Fetcher)(nil)

// New builds a Fetcher from resolved options.
func New(opts source.Options) *Fetcher {
	var client *http.Client
	switch {
	case opts.HTTPClient != nil:
		clone := *opts.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = opts.Timeout
		}
		client = &clone
	case opts.Remote:
		client = &http.Client{Timeout: opts.Timeout}
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = source.DefaultMaxSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Fetcher{
		fsys:    opts.FileSystem,
		client:  client,
		header:  opts.Header.Clone(),
		maxSize: maxSize,
		logger:  logger,
	}
}

// Fetch reads the document ref points to.
func (f *Fetcher) Fetch(ctx context.Context, ref source.Ref) (source.Document, error) {
	if err := ctx.Err(); err != nil {
		return source.Document{}, err
	}
	if ref.Location == "" {
		return source.Document{}, fmt.Errorf("%w: %s has no location", source.ErrInvalidRef, ref)
	}

	var (
		data      []byte
		mediaType string
		err       error
	)
	switch ref.Kind {
	case source.KindFile:
		data, err = f.readFile(ref.Location)
	case source.KindFS:
		data, err = f.readFS(ref.Location)
	case source.KindURL:
		data, mediaType, err = f.get(ctx, ref.Location)
	default:
		err = fmt.Errorf("%w: unknown kind %q", source.ErrInvalidRef, ref.Kind)
	}
	if err != nil {
		f.logger.Debug("source: fetch failed", zap.Stringer("ref", ref), zap.Error(err))
		return source.Document{}, err
	}

	doc, err := source.NewDocument(ref, data, mediaType)
	if err != nil {
		return source.Document{}, fmt.Errorf("%w: %s", err, ref)
	}
	f.logger.Debug("source: fetched document",
		zap.Stringer("ref", ref),
		zap.String("format", string(doc.Format)),
		zap.Int("bytes", len(doc.Data)),
	)
	return doc, nil
}

// readLimited reads r whole, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64, location string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", location, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", source.ErrTooLarge, location, limit)
	}
	return data, nil
}
