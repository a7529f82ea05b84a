package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/repositories"
	"trailhub/internal/services"
)

var Module = fx.Provide(
	provideTripRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	trips repositories.TripRepository,
	locations repositories.LocationRepository,
	users repositories.UserRepository,
	mail services.MailService,
	log *zap.Logger,
) services.TripService {
	return services.NewTripService(trips, locations, users, mail, log)
}
