package httpapi

import (
	"context"

	"github.com/rs/zerolog"
)

// defaultMultipartMemory is the part of an upload kept in memory; the rest
// spills to temporary files.
const defaultMultipartMemory = 32 << 20

// Options configures the HTTP layer. The zero value is usable.
type Options struct {
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// LogLevel is the per-request default, overridable with ?log= or X-Log-Level.
	LogLevel LogLevel
	// StrictStatus maps logical /predict failures to 4xx/5xx instead of 200.
	StrictStatus bool
	// MaxUploadBytes limits the request body of /predict (0 = unbounded).
	MaxUploadBytes int64
	CORS           CORSOptions
	// BaseContext is canceled on shutdown; handlers join it with the request context.
	BaseContext context.Context
}

// CORSOptions configures go-chi/cors. If disabled, no CORS middleware is added.
type CORSOptions struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	if o.BaseContext == nil {
		o.BaseContext = context.Background()
	}
	if len(o.CORS.AllowedOrigins) == 0 {
		o.CORS.AllowedOrigins = []string{"*"}
	}
	if len(o.CORS.AllowedMethods) == 0 {
		o.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(o.CORS.AllowedHeaders) == 0 {
		o.CORS.AllowedHeaders = []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"}
	}
	return o
}
