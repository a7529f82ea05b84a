package infra

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"trailhub/internal/config"
	dbm "trailhub/internal/models/db_models"
	"trailhub/pkg/logger"
)

var autoMigrateModels = []any{
	&dbm.User{},
	&dbm.UserPreference{},
	&dbm.UserInterest{},
	&dbm.AdventureLocation{},
	&dbm.Review{},
	&dbm.UserSubmittedSpot{},
	&dbm.Trip{},
	&dbm.ItineraryItem{},
	&dbm.Budget{},
	&dbm.PackingItem{},
	&dbm.Notification{},
	&dbm.EmergencyContact{},
	&dbm.UserEmergencyContact{},
	&dbm.FirstAidKit{},
	&dbm.FirstAidItem{},
	&dbm.UserMedicalReport{},
	&dbm.SuggestedEvent{},
}

// Open connects to the configured database. sqlite is used for local
// development and tests, postgres in production.
func Open(driver, dsn string, gl gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// sqlite allows a single writer; a shared connection also keeps
		// in-memory databases alive across calls.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func InitDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Server.Mode == config.ModeDebug && cfg.Log.Level == "debug" {
		level = gormlogger.Info
	}

	db, err := Open(cfg.Database.Driver, cfg.Database.DSN, logger.NewGormLogger(log, level))
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	if cfg.Database.Seed {
		if err := Seed(context.Background(), db); err != nil {
			return nil, err
		}
	}

	log.Info("database ready", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(autoMigrateModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("get database handle", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("close database", zap.Error(err))
		return
	}
	log.Info("database connection closed")
}
