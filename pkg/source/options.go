package source

import (
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxSize caps documents at 8 MiB.
const DefaultMaxSize int64 = 8 << 20

// Options configures a Fetcher.
type Options struct {
	// FileSystem backs KindFS refs.
	FileSystem fs.FS

	// HTTPClient enables URL refs with a caller supplied client.
	HTTPClient *http.Client

	// Remote enables URL refs with a default client when HTTPClient is nil.
	Remote bool

	// Timeout bounds each remote fetch. Zero means no limit beyond ctx.
	Timeout time.Duration

	// MaxSize rejects larger documents with ErrTooLarge.
	MaxSize int64

	// Header is sent with every remote request, e.g. document store auth.
	Header http.Header

	Logger *zap.Logger
}

// Option mutates Options before the fetcher is built.
type Option func(*Options)

// WithFileSystem sets the fs.FS used for FS refs.
func WithFileSystem(files fs.FS) Option {
	return func(opts *Options) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL refs using client.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithRemote enables URL refs with a default client and per-request timeout.
func WithRemote(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Remote = true
		opts.Timeout = timeout
	}
}

// WithMaxSize overrides DefaultMaxSize. Non-positive values are ignored.
func WithMaxSize(limit int64) Option {
	return func(opts *Options) {
		if limit > 0 {
			opts.MaxSize = limit
		}
	}
}

// WithHeader adds a header to every remote request.
func WithHeader(key, value string) Option {
	return func(opts *Options) {
		if opts.Header == nil {
			opts.Header = http.Header{}
		}
		opts.Header.Add(key, value)
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// NewOptions applies options over the defaults: local refs only, 8 MiB
// limit, no-op logger.
func NewOptions(options ...Option) Options {
	cfg := Options{
		MaxSize: DefaultMaxSize,
		Logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
