package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostgresStore is the durable Store backed by gorm/postgres.
type PostgresStore struct {
	DB *gorm.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// CreateUser creates a new user. A unique-constraint violation on the email
// column is reported as ErrDuplicateEmail.
func (s *PostgresStore) CreateUser(user *models.User) (*models.User, error) {
	tx := s.DB.Begin()
	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err, "email") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		if isUniqueViolation(err, "email") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

func isUniqueViolation(err error, column string) bool {
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return strings.Contains(pgErr.Error(), column)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return false
}

// GetUserByEmail retrieves a user by their email address.
func (s *PostgresStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, err
	}

	return &user, nil
}

// UserCount returns the number of registered users.
func (s *PostgresStore) UserCount() (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

// AppendQueryLog appends a query/response pair to the user's history.
func (s *PostgresStore) AppendQueryLog(entry *models.QueryLog) error {
	err := s.DB.Create(entry).Error
	if err != nil {
		logger.Get().Error("failed to append query log",
			zap.String("user_email", entry.UserEmail),
			zap.String("category", string(entry.Category)),
			zap.Error(err))
	}
	return err
}

// GetUserQueries retrieves a user's most recent query history entries,
// newest first.
func (s *PostgresStore) GetUserQueries(email string, limit int) ([]models.QueryLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.QueryLog
	err := s.DB.Where("user_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// Ping verifies database connectivity.
func (s *PostgresStore) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
