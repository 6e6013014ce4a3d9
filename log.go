package simtrie

import (
	"sync"

	"go.uber.org/zap"
)

// logger is consulted only at build/load boundaries, never on the
// Contains/Get/Keys/Similar hot path; navigation primitives never log.
var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// SetLogger installs l as the package-wide diagnostic logger. The only
// record written to it is LoadMmap's debug entry for a successfully mapped
// image. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func currentLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
