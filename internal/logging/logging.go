package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"xwinpong/internal/config"
)

// New builds the game's logger. Console output gets colored levels only when
// it goes to a terminal.
func New(cfg config.LoggingConfig, out *os.File) *zap.Logger {
	return zap.New(Core(cfg, out, term.IsTerminal(int(out.Fd()))))
}

func Core(cfg config.LoggingConfig, out zapcore.WriteSyncer, color bool) zapcore.Core {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.ConsoleSeparator = "  "
		encCfg.CallerKey = zapcore.OmitKey
		encCfg.StacktraceKey = zapcore.OmitKey
		if color {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zapcore.NewCore(enc, zapcore.Lock(out), level)
}
