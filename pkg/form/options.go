package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type config struct {
	validators *validation.Registry
	masks      *mask.Registry
	onChange   func(*Group)
	logger     *zap.Logger
}

// Option configures a Group or a standalone Control.
type Option func(*config)

func newConfig(options ...Option) config {
	cfg := config{
		validators: validation.Default(),
		masks:      mask.Default(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithValidators replaces the validator registry.
func WithValidators(registry *validation.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.validators = registry
		}
	}
}

// WithMasks replaces the masking registry.
func WithMasks(registry *mask.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.masks = registry
		}
	}
}

// WithChangeHandler registers fn to run after every committed mutation, once
// all subscribers have been notified.
func WithChangeHandler(fn func(*Group)) Option {
	return func(cfg *config) {
		cfg.onChange = fn
	}
}

// WithLogger sets the logger used for programming-error diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
