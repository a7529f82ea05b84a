package location_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/infra"
	"trailhub/internal/repositories"
	"trailhub/internal/services"
)

var Module = fx.Provide(
	provideLocationRepo,
	provideReviewRepo,
	provideInterestRepo,
	provideLocationService,
	provideReviewService,
	provideSuggestionService,
)

func provideLocationRepo(db *gorm.DB) repositories.LocationRepository {
	return repositories.NewLocationRepository(db)
}

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepository {
	return repositories.NewReviewRepository(db)
}

func provideInterestRepo(db *gorm.DB) repositories.InterestRepository {
	return repositories.NewInterestRepository(db)
}

func provideLocationService(repo repositories.LocationRepository, weather infra.WeatherProvider, log *zap.Logger) services.LocationService {
	return services.NewLocationService(repo, weather, log)
}

func provideReviewService(reviews repositories.ReviewRepository, locations repositories.LocationRepository, log *zap.Logger) services.ReviewService {
	return services.NewReviewService(reviews, locations, log)
}

func provideSuggestionService(
	locations repositories.LocationRepository,
	interests repositories.InterestRepository,
	users repositories.UserRepository,
	trips repositories.TripRepository,
	log *zap.Logger,
) services.SuggestionService {
	return services.NewSuggestionService(locations, interests, users, trips, log)
}
