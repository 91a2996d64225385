package logsvc

import (
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trezcool/mindbloom/core"
)

// Logger writes to zap and, when a token is configured, reports warnings and errors to Rollbar.
type Logger struct {
	std     *zap.SugaredLogger
	rollbar bool
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(conf *core.Config, name string) (*Logger, error) {
	zconf := zap.NewProductionConfig()
	if conf.Debug {
		zconf = zap.NewDevelopmentConfig()
	}
	if conf.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(conf.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		zconf.Level = zap.NewAtomicLevelAt(lvl)
	}
	zconf.OutputPaths = []string{"stderr"}
	std, err := zconf.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	l := &Logger{std: std.Named(name).Sugar()}
	if conf.RollbarToken != "" {
		rollbar.SetToken(conf.RollbarToken)
		rollbar.SetEnvironment(conf.Env)
		rollbar.SetCodeVersion(conf.Build)
		rollbar.SetStackTracer(errors.StackTracer)
		rollbar.SetEnabled(!(conf.Debug || conf.TestMode))
		l.rollbar = true
	}
	return l, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{std: zap.NewNop().Sugar()}
}

// NewWithZap wraps an existing zap logger, eg. an observer in tests.
func NewWithZap(std *zap.Logger) *Logger {
	return &Logger{std: std.Sugar()}
}

// expected fmt: msg | error, map[string]interface{}
func (l *Logger) fields(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, len(args)*2)
	for i, arg := range args {
		switch v := arg.(type) {
		case error:
			kvs = append(kvs, zap.Error(v))
		case map[string]interface{}:
			for k, val := range v {
				kvs = append(kvs, k, val)
			}
		default:
			kvs = append(kvs, fmt.Sprintf("arg%d", i), v)
		}
	}
	return kvs
}

func (l *Logger) report(level string, msg string, args []interface{}) {
	if !l.rollbar {
		return
	}
	rollbar.Log(level, append([]interface{}{msg}, args...)...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.std.Debugw(msg, l.fields(args)...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.std.Infow(msg, l.fields(args)...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.WARN, msg, args)
	l.std.Warnw(msg, l.fields(args)...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.report(rollbar.ERR, msg, args)
	l.std.Errorw(msg, l.fields(args)...)
}

// Close flushes buffered logs and waits for pending Rollbar reports.
func (l *Logger) Close() {
	_ = l.std.Sync()
	if l.rollbar {
		rollbar.Wait()
	}
}
