package utils

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

// GetLogger returns the process logger. The ctx argument keeps call sites
// ready for request-scoped loggers without a signature change later.
func GetLogger(ctx context.Context) *zap.Logger {
	return zap.L()
}

// GetPanicInfo captures the current goroutine stack for panic reports.
func GetPanicInfo() string {
	buf := make([]byte, 16384)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
