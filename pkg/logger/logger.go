// Package logger builds the zap loggers used by the commands.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type Config struct {
	Path    string
	Mode    FileMode
	Level   zapcore.Level
	DevMode bool
}

// New returns a logger writing to c.Path.  Logs sent to a terminal stream
// are human readable while logs sent to a file are JSON.
func New(c Config) (*zap.Logger, error) {
	w, err := OpenFile(c.Path, c.Mode)
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	switch c.Path {
	case "", "stderr", "stdout":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		if isTerminal(c.Path) {
			cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	opts := []zap.Option{zap.ErrorOutput(w)}
	if c.DevMode {
		opts = append(opts, zap.Development(), zap.AddCaller())
	}
	return zap.New(zapcore.NewCore(enc, w, c.Level), opts...), nil
}

func isTerminal(path string) bool {
	f := os.Stderr
	if path == "stdout" {
		f = os.Stdout
	}
	return term.IsTerminal(int(f.Fd()))
}
