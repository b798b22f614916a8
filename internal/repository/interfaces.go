package repository

import "github.com/gramvaani/gramvaani-api/internal/models"

// UserRepo is the interface for user repository operations.
type UserRepo interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UserCount() (int64, error)
}

// QueryRepo is the interface for query history operations. AppendQueryLog is
// append-only; entries are never mutated afterwards.
type QueryRepo interface {
	AppendQueryLog(entry *models.QueryLog) error
	GetUserQueries(email string, limit int) ([]models.QueryLog, error)
}

// Store bundles the repositories plus a liveness check, so the server can be
// wired to either the durable postgres store or the ephemeral in-memory one.
type Store interface {
	UserRepo
	QueryRepo
	Ping() error
}
