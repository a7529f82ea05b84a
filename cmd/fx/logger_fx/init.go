package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	log := logger.New(cfg)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log
}
