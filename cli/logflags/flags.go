package logflags

import (
	"github.com/brimdata/span/pkg/logger"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Flags struct {
	Config logger.Config
}

func (f *Flags) SetFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&f.Config.DevMode, "log.devmode", false, "development mode (if enabled dpanic level logs will cause a panic)")
	f.Config.Level = zap.WarnLevel
	fs.Var(levelValue{&f.Config.Level}, "log.level", "logging level (values: debug, info, warn, error)")
	fs.StringVar(&f.Config.Path, "log.path", "stderr", "path to send logs (values: stderr, stdout, path in file system)")
	f.Config.Mode = logger.FileModeTruncate
	fs.Var(&f.Config.Mode, "log.filemode", "logger file write mode (values: append, truncate, rotate)")
}

func (f *Flags) Open() (*zap.Logger, error) {
	return logger.New(f.Config)
}

// levelValue adapts a zapcore.Level to pflag.Value.
type levelValue struct {
	*zapcore.Level
}

func (levelValue) Type() string { return "level" }
