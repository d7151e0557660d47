package collection

import (
	"io"
	"log/slog"

	"github.com/hupe1980/pointstore/codec"
)

type options struct {
	codec  codec.Codec
	logger *slog.Logger
}

// Option configures a Collection.
type Option func(*options)

// WithCodec configures the codec used for stored payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging for collection operations.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:  codec.Default,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
