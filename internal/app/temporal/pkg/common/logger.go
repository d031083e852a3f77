package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with appropriate configuration
func NewLogger(development bool) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	return config.Build()
}

// MustNewLogger creates a new logger and panics if it fails
func MustNewLogger(development bool) *zap.Logger {
	logger, err := NewLogger(development)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

// ZapAdapter bridges a zap logger into the Temporal SDK logger interface.
type ZapAdapter struct {
	sugared *zap.SugaredLogger
}

// NewZapAdapter wraps logger for use as a Temporal client or worker logger.
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	// Skip one frame so call sites inside the SDK resolve to SDK code.
	return &ZapAdapter{sugared: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (a *ZapAdapter) Debug(msg string, keyvals ...interface{}) {
	a.sugared.Debugw(msg, keyvals...)
}

func (a *ZapAdapter) Info(msg string, keyvals ...interface{}) {
	a.sugared.Infow(msg, keyvals...)
}

func (a *ZapAdapter) Warn(msg string, keyvals ...interface{}) {
	a.sugared.Warnw(msg, keyvals...)
}

func (a *ZapAdapter) Error(msg string, keyvals ...interface{}) {
	a.sugared.Errorw(msg, keyvals...)
}
