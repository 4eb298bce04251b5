package db

import (
	"fmt"
	"todo-server/entities"

	"github.com/charmbracelet/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the PostgreSQL pool, configures it and runs migrations.
func Connect(dsn string, verbose bool, l *log.Logger) (*GormDatabase, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	l.Info("connecting to database")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	l.Info("database connection established, running migrations")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	l.Info("database migrations completed")

	return &GormDatabase{DB: db}, nil
}

// Migrate creates or updates the schema of the user aggregate.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}, &entities.TodoList{}, &entities.Item{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
