package observability

import "go.uber.org/zap"

// Field constructors re-exported so callers do not import zap directly.
//
//nolint:gochecknoglobals // Aliases of zap constructors
var (
	String   = zap.String
	Strings  = zap.Strings
	Int      = zap.Int
	Bool     = zap.Bool
	Float64  = zap.Float64
	Duration = zap.Duration
	Error    = zap.Error
	Any      = zap.Any
)
