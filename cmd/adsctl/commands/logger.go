package commands

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger adapts a zap.SugaredLogger to ads.Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// newLogger writes console-encoded logs to stderr. Verbose mode lowers the
// level to debug, which also surfaces request and response dumps.
func newLogger(verbose bool) *zapLogger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	return &zapLogger{sugar: zap.New(core).Sugar()}
}

func (l *zapLogger) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, keysAndValues(fields)...)
}

func (l *zapLogger) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, keysAndValues(fields)...)
}

func (l *zapLogger) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, keysAndValues(fields)...)
}

func (l *zapLogger) Error(msg string, fields map[string]interface{}) {
	l.sugar.Errorw(msg, keysAndValues(fields)...)
}

func keysAndValues(fields map[string]interface{}) []interface{} {
	out := make([]interface{}, 0, len(fields)*2) //nolint:mnd

	for key, value := range fields {
		out = append(out, key, value)
	}

	return out
}
