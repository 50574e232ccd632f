package repository

import (
	"fmt"

	"github.com/zenithtask/zenithtask/pkg/config"
	"github.com/zenithtask/zenithtask/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Tag{},
		&models.TaskTag{},
		&models.FocusSession{},
		&models.EnergyLog{},
	)
}

// Store provides access to the persistence layer. Each method runs on a
// session scoped to the caller's context; the underlying connection pool is
// the only shared state.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}
