package safety_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/config"
	"trailhub/internal/infra"
	"trailhub/internal/repositories"
	"trailhub/internal/services"
)

var Module = fx.Provide(
	provideEmergencyRepo,
	provideFirstAidRepo,
	provideMedicalReportRepo,
	provideEmergencyService,
	provideFirstAidService,
	provideMedicalReportService,
)

func provideEmergencyRepo(db *gorm.DB) repositories.EmergencyRepository {
	return repositories.NewEmergencyRepository(db)
}

func provideFirstAidRepo(db *gorm.DB) repositories.FirstAidRepository {
	return repositories.NewFirstAidRepository(db)
}

func provideMedicalReportRepo(db *gorm.DB) repositories.MedicalReportRepository {
	return repositories.NewMedicalReportRepository(db)
}

func provideEmergencyService(repo repositories.EmergencyRepository, log *zap.Logger) services.EmergencyService {
	return services.NewEmergencyService(repo, log)
}

func provideFirstAidService(kits repositories.FirstAidRepository, trips repositories.TripRepository, log *zap.Logger) services.FirstAidService {
	return services.NewFirstAidService(kits, trips, log)
}

func provideMedicalReportService(
	repo repositories.MedicalReportRepository,
	storage infra.ObjectStorage,
	cfg *config.Config,
	log *zap.Logger,
) services.MedicalReportService {
	return services.NewMedicalReportService(repo, storage, cfg, log)
}
