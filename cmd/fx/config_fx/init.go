package config_fx

import (
	"go.uber.org/fx"

	"trailhub/internal/config"
)

// Path is the config file given on the command line; empty falls back to
// TRAILHUB_CONFIG and then to built-in defaults.
type Path string

func Module(path string) fx.Option {
	return fx.Options(
		fx.Supply(Path(path)),
		fx.Provide(provideConfig),
	)
}

func provideConfig(path Path) (*config.Config, error) {
	return config.Load(string(path))
}
