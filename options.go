// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package deferred

import (
	"github.com/joeycumines/logiface"
)

// deferredOptions holds configuration options for Deferred creation.
type deferredOptions struct {
	logger *logiface.Logger[logiface.Event]
	name   string
}

// --- Deferred Options ---

// Option configures a Deferred instance.
type Option interface {
	applyDeferred(*deferredOptions)
}

// optionImpl implements Option.
type optionImpl struct {
	applyDeferredFunc func(*deferredOptions)
}

func (o *optionImpl) applyDeferred(opts *deferredOptions) {
	o.applyDeferredFunc(opts)
}

// WithLogger attaches a structured logger to the Deferred. Resolution and
// drain transitions are logged at debug level; unhandled failures at error
// level. When unset, the package default logger applies (see
// [SetDefaultLogger]); a nil logger disables logging for the instance.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *deferredOptions) {
		opts.logger = logger
	}}
}

// WithName sets a name used to identify the Deferred in log output.
// Useful when correlating transitions across several chains.
func WithName(name string) Option {
	return &optionImpl{func(opts *deferredOptions) {
		opts.name = name
	}}
}

// resolveOptions applies Option instances to deferredOptions.
func resolveOptions(opts []Option) *deferredOptions {
	cfg := &deferredOptions{
		logger: defaultLogger(), // default, possibly nil
	}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		opt.applyDeferred(cfg)
	}
	return cfg
}
