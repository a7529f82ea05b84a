package planning_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/repositories"
	"trailhub/internal/services"
)

var Module = fx.Provide(
	provideBudgetRepo,
	providePackingRepo,
	provideBudgetService,
	providePackingService,
	services.NewExportService,
)

func provideBudgetRepo(db *gorm.DB) repositories.BudgetRepository {
	return repositories.NewBudgetRepository(db)
}

func providePackingRepo(db *gorm.DB) repositories.PackingRepository {
	return repositories.NewPackingRepository(db)
}

func provideBudgetService(repo repositories.BudgetRepository, log *zap.Logger) services.BudgetService {
	return services.NewBudgetService(repo, log)
}

func providePackingService(repo repositories.PackingRepository, log *zap.Logger) services.PackingService {
	return services.NewPackingService(repo, log)
}
