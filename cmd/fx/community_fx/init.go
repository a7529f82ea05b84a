package community_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/repositories"
	"trailhub/internal/services"
)

var Module = fx.Provide(
	provideSpotRepo,
	provideEventRepo,
	provideNotificationRepo,
	provideSpotService,
	provideEventService,
	provideNotificationService,
	provideInterestService,
	provideBuddyService,
)

func provideSpotRepo(db *gorm.DB) repositories.SpotRepository {
	return repositories.NewSpotRepository(db)
}

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideSpotService(spots repositories.SpotRepository, users repositories.UserRepository, log *zap.Logger) services.SpotService {
	return services.NewSpotService(spots, users, log)
}

func provideEventService(repo repositories.EventRepository, log *zap.Logger) services.EventService {
	return services.NewEventService(repo, log)
}

func provideNotificationService(repo repositories.NotificationRepository, log *zap.Logger) services.NotificationService {
	return services.NewNotificationService(repo, log)
}

func provideInterestService(repo repositories.InterestRepository, log *zap.Logger) services.InterestService {
	return services.NewInterestService(repo, log)
}

func provideBuddyService(interests repositories.InterestRepository, users repositories.UserRepository, log *zap.Logger) services.BuddyService {
	return services.NewBuddyService(interests, users, log)
}
