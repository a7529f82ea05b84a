package infra_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/internal/infra"
)

var Module = fx.Provide(
	provideObjectStorage,
	provideWeather,
)

func provideObjectStorage(cfg *config.Config, log *zap.Logger) (infra.ObjectStorage, error) {
	storage, err := infra.NewObjectStorage(context.Background(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Info("object storage", zap.String("driver", storage.Driver()))
	return storage, nil
}

func provideWeather(cfg *config.Config, log *zap.Logger) infra.WeatherProvider {
	return infra.NewOpenMeteoClient(cfg.Weather, log)
}
