package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"trailhub/cmd/fx/account_fx"
	"trailhub/cmd/fx/auth_fx"
	"trailhub/cmd/fx/community_fx"
	"trailhub/cmd/fx/config_fx"
	"trailhub/cmd/fx/controllers_fx"
	"trailhub/cmd/fx/dashboard_fx"
	"trailhub/cmd/fx/db_fx"
	"trailhub/cmd/fx/infra_fx"
	"trailhub/cmd/fx/location_fx"
	"trailhub/cmd/fx/logger_fx"
	"trailhub/cmd/fx/mail_fx"
	"trailhub/cmd/fx/memcache_fx"
	"trailhub/cmd/fx/planning_fx"
	"trailhub/cmd/fx/safety_fx"
	"trailhub/cmd/fx/trip_fx"
	"trailhub/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	app := fx.New(
		config_fx.Module(*configPath),
		logger_fx.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		infra_fx.Module,
		auth_fx.Module,
		account_fx.Module,
		location_fx.Module,
		trip_fx.Module,
		planning_fx.Module,
		community_fx.Module,
		safety_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("mode", string(cfg.Server.Mode)))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
