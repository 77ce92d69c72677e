package logger

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultService names the process when nothing else does.
const DefaultService = "catalog-be"

var (
	global   atomic.Pointer[zap.Logger]
	initOnce sync.Once
)

type Options struct {
	Service string
	Env     string
	// Level is one of debug, info, warn or error. Empty keeps the
	// environment's default.
	Level string
}

// New builds a logger for opts. Production gets JSON on stdout, anything
// else a colored development console. Every entry carries the service and env.
// extra options are applied before the service fields.
func New(opts Options, extra ...zap.Option) (*zap.Logger, error) {
	var cfg zap.Config

	if opts.Env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	service := opts.Service
	if service == "" {
		service = DefaultService
	}
	env := opts.Env
	if env == "" {
		env = "development"
	}

	buildOpts := make([]zap.Option, 0, len(extra)+2)
	buildOpts = append(buildOpts, extra...)
	buildOpts = append(buildOpts,
		zap.AddCaller(),
		zap.Fields(zap.String("service", service), zap.String("env", env)),
	)
	return cfg.Build(buildOpts...)
}

// Init installs the process logger. It panics when opts cannot be built,
// since nothing useful runs without a logger.
func Init(opts Options) {
	l, err := New(opts)
	if err != nil {
		panic(err)
	}
	Set(l)
}

// Set replaces the process logger.
func Set(l *zap.Logger) {
	global.Store(l)
	initOnce.Do(func() {})
}

// L returns the process logger, building one from APP_ENV and LOG_LEVEL
// on first use if Init was never called.
func L() *zap.Logger {
	initOnce.Do(func() {
		if global.Load() != nil {
			return
		}
		l, err := New(Options{Env: os.Getenv("APP_ENV"), Level: os.Getenv("LOG_LEVEL")})
		if err != nil {
			l = zap.NewNop()
		}
		global.Store(l)
	})
	return global.Load()
}

func Sync() {
	if l := global.Load(); l != nil {
		_ = l.Sync()
	}
}
