package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New creates a new database connection.
func New(cfg *config.Config) (*gorm.DB, error) {
	return connectToDatabaseWithRetry(cfg.EnvVars.DatabaseUrl)
}

// connectToDatabaseWithRetry connects to the database and retries if necessary.
func connectToDatabaseWithRetry(databaseURL string) (*gorm.DB, error) {
	logger.Get().Info("connecting to database")
	var database *gorm.DB
	var err error

	start := time.Now()
	for {
		database, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Since(start) > 1*time.Minute {
			return nil, fmt.Errorf("could not connect to database after 1 minute: %w", err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(5 * time.Second)
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.QueryLog{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return database, nil
}

// SeedTestUser creates the well-known test account when it does not exist
// yet, so fresh deployments are immediately usable.
func SeedTestUser(database *gorm.DB) error {
	var existing models.User
	err := database.Where("email = ?", "test@example.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:          "test@example.com",
		HashedPassword: string(hashed),
		Language:       "en",
		Location:       "Delhi, India",
	}
	if err := database.Create(user).Error; err != nil {
		return err
	}

	logger.Get().Info("test user created", zap.String("email", user.Email))
	return nil
}
