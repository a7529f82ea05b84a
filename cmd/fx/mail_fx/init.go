package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log *zap.Logger) services.MailService {
	if cfg.Mail.Enabled && cfg.Mail.Host == "" {
		log.Warn("mail enabled without mail.host; messages will fail to send")
	}
	return services.NewMailService(cfg, log)
}
