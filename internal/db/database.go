package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/types"
	"github.com/avready/readiness-backend/internal/utils"
)

type DatabaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "sqlite", log))

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "product_readiness", log)
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		dialector = postgres.Open(dsn)
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "product_readiness.db", log)
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	log.Info("Connecting to database...", "driver", driver)
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DatabaseService{db: gdb, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.TechnicalReadinessLevel{},
		&types.VehiclePlatform{},
		&types.ODD{},
		&types.Environment{},
		&types.Trailer{},
		&types.ProductFeature{},
		&types.Capability{},
		&types.TechnicalFunction{},
		&types.ReadinessAssessment{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

// SeedReferenceData inserts the static TRL scale and the fixed vehicle
// platform table if they are not present yet. Safe to run on every start.
func (s *DatabaseService) SeedReferenceData() error {
	var trlCount int64
	if err := s.db.Model(&types.TechnicalReadinessLevel{}).Count(&trlCount).Error; err != nil {
		return err
	}
	if trlCount == 0 {
		s.log.Info("Seeding TRL reference table...")
		if err := s.db.Create(defaultReadinessLevels()).Error; err != nil {
			return fmt.Errorf("failed to seed readiness levels: %w", err)
		}
	}

	var platformCount int64
	if err := s.db.Model(&types.VehiclePlatform{}).Count(&platformCount).Error; err != nil {
		return err
	}
	if platformCount == 0 {
		s.log.Info("Seeding vehicle platform table...")
		if err := s.db.Create(defaultVehiclePlatforms()).Error; err != nil {
			return fmt.Errorf("failed to seed vehicle platforms: %w", err)
		}
	}
	return nil
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}

func defaultReadinessLevels() []*types.TechnicalReadinessLevel {
	return []*types.TechnicalReadinessLevel{
		{Level: 1, Name: "Basic principles observed", Description: "Scientific research begins to be translated into applied research and development"},
		{Level: 2, Name: "Technology concept formulated", Description: "Practical applications can be invented"},
		{Level: 3, Name: "Experimental proof of concept", Description: "Active research and development is initiated"},
		{Level: 4, Name: "Technology validated in lab", Description: "Basic technological components are integrated"},
		{Level: 5, Name: "Technology validated in environment", Description: "Technology components and/or basic technology subsystems are integrated with realistic supporting elements"},
		{Level: 6, Name: "Technology demonstrated in environment", Description: "Representative model or prototype system is tested in a relevant environment"},
		{Level: 7, Name: "System prototype demonstrated", Description: "Prototype near or at planned operational system"},
		{Level: 8, Name: "System complete and qualified", Description: "Technology has been proven to work in its final form and under expected conditions"},
		{Level: 9, Name: "Actual system proven in operational environment", Description: "Actual application of technology in its final form"},
	}
}

func defaultVehiclePlatforms() []*types.VehiclePlatform {
	return []*types.VehiclePlatform{
		{ID: 1, Name: "Terberg ATT", Description: "Terberg autonomous terminal tractor", VehicleType: "terberg"},
		{ID: 2, Name: "CA500", Description: "CA500 cargo platform", VehicleType: "van"},
		{ID: 3, Name: "T800", Description: "T800 heavy platform", VehicleType: "truck"},
		{ID: 4, Name: "AEV", Description: "Autonomous electric vehicle", VehicleType: "car"},
		{ID: 5, Name: "Truck Platform", Description: "General truck platform", VehicleType: "truck"},
		{ID: 6, Name: "Van Platform", Description: "General van platform", VehicleType: "van"},
		{ID: 7, Name: "Car Platform", Description: "General car platform", VehicleType: "car"},
		{ID: 8, Name: "Generic Platform", Description: "Platform-independent", VehicleType: "generic"},
	}
}
