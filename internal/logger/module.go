package logger

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/gebeyahq/marketadmin/internal/config"
)

// Module wires slog logger for dependency injection.
var Module = fx.Provide(newLogger)

type params struct {
	fx.In

	Config *config.Config
}

func newLogger(p params) *slog.Logger {
	return New(p.Config.LogLevel)
}
