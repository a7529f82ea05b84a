package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/config"
	"trailhub/internal/repositories"
	"trailhub/internal/services"
	mem "trailhub/pkg/memcache"
	"trailhub/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(
	users repositories.UserRepository,
	issuer *utils.TokenIssuer,
	tokens mem.TokenStore,
	mail services.MailService,
	cfg *config.Config,
	log *zap.Logger,
) services.AccountService {
	return services.NewAccountService(users, issuer, tokens, mail, cfg, log)
}
