// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"strings"

	"go.uber.org/zap"
)

// Option configures a coder at construction time.
type Option func(*options)

type options struct {
	logger *zap.Logger
	name   string
}

func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("logger can't be nil")
	}
	return func(o *options) {
		o.logger = l
	}
}

// WithName labels the coder in log output, e.g. with a stream id.
func WithName(name string) Option {
	name = strings.TrimSpace(name)
	if name == "" {
		panic("name can't be blank")
	}
	return func(o *options) {
		o.name = name
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}
