package auth_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"trailhub/internal/config"
	mem "trailhub/pkg/memcache"
	"trailhub/pkg/middleware"
	"trailhub/pkg/utils"
)

var Module = fx.Provide(
	provideTokenIssuer,
	provideAuthenticator,
	provideRateLimiter,
)

func provideTokenIssuer(cfg *config.Config, log *zap.Logger) (*utils.TokenIssuer, error) {
	secret := cfg.JWT.Secret
	if secret == "" {
		// Only reachable in debug mode; config validation rejects it in release.
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			return nil, err
		}
		secret = generated
		log.Warn("jwt.secret not set, using a random secret; sessions end on restart")
	}
	return utils.NewTokenIssuer(secret, cfg.JWT.TTL), nil
}

func provideAuthenticator(issuer *utils.TokenIssuer, store mem.TokenStore, cfg *config.Config) *middleware.Authenticator {
	return middleware.NewAuthenticator(issuer, store, cfg.Session.CookieName)
}

func provideRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go rl.RunCleanup(ctx, 10*time.Minute)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return rl
}
