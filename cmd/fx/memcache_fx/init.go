package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/internal/infra"
	mem "trailhub/pkg/memcache"
)

const janitorInterval = time.Minute

var Module = fx.Provide(provideTokenStore)

// provideTokenStore uses redis when redis.addr is set, otherwise an in-process
// store swept by a background janitor.
func provideTokenStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) mem.TokenStore {
	if cfg.Redis.Addr != "" {
		store := infra.NewRedisTokenStore(infra.NewRedisClient(cfg.Redis))
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := store.Ping(ctx); err != nil {
					log.Warn("redis unreachable at startup", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
				}
				return nil
			},
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})
		log.Info("token store", zap.String("backend", "redis"))
		return store
	}

	store := mem.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go store.RunJanitor(ctx, janitorInterval)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	log.Info("token store", zap.String("backend", "memory"))
	return store
}
