package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	mux        sync.RWMutex
)

// Logger returns the shared logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		mux.Lock()
		if logger == nil {
			logger = zap.NewNop()
		}
		mux.Unlock()
	})
	mux.RLock()
	defer mux.RUnlock()
	return logger
}

// SetLogger replaces the shared logger
func SetLogger(l *zap.Logger) {
	mux.Lock()
	defer mux.Unlock()
	logger = l
}

// New creates console logger writing to stderr at the given level (debug, info, warn, error)
func New(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atomicLevel
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
