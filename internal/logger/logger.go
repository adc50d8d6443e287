package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvVar = "RV_APP_ENV"

type Options struct {
	// "dev" gets the human readable development logger, anything else is
	// production json
	Env      string
	Level    string
	Encoding string
}

func New(opts Options) (*zap.SugaredLogger, error) {
	var (
		cfg     zap.Config
		zapOpts = []zap.Option{
			zap.AddStacktrace(zap.ErrorLevel),
		}
	)

	if strings.ToLower(opts.Env) == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		zapOpts = append(zapOpts, zap.Fields(zap.Field{
			Key:    "env",
			Type:   zapcore.StringType,
			String: opts.Env,
		}))
	}

	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log level %s: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}

	logger, err := cfg.Build(zapOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.Sugar(), nil
}

// NewFromEnv is New driven only by RV_APP_ENV. panics since there is no
// sane way to continue without a logger
func NewFromEnv() *zap.SugaredLogger {
	l, err := New(Options{Env: os.Getenv(EnvVar)})
	if err != nil {
		panic(err)
	}
	return l
}

type contextKey string

const ContextKey contextKey = "LOGGER"

func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, l)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	l, ok := ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !ok {
		return zap.S()
	}
	return l
}

func init() {
	zap.ReplaceGlobals(NewFromEnv().Desugar())
}
