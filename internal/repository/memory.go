package repository

import (
	"sync"
	"time"

	"github.com/gramvaani/gramvaani-api/internal/models"
)

// MemoryStore is the ephemeral Store used when no DATABASE_URL is
// configured, and by test harnesses. Created once at process start;
// contents live only as long as the process.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  uint
	users   map[string]*models.User
	queries []models.QueryLog
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		users:  make(map[string]*models.User),
	}
}

// CreateUser creates a new user. Registering an email twice is reported as
// ErrDuplicateEmail, matching the postgres unique constraint.
func (s *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()

	stored := *user
	s.users[user.Email] = &stored

	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, NewNotFoundError("user not found")
	}

	copied := *user
	return &copied, nil
}

// UserCount returns the number of registered users.
func (s *MemoryStore) UserCount() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// AppendQueryLog appends a query/response pair to the history slice.
func (s *MemoryStore) AppendQueryLog(entry *models.QueryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	entry.CreatedAt = time.Now()
	s.queries = append(s.queries, *entry)

	return nil
}

// GetUserQueries retrieves a user's most recent query history entries,
// newest first.
func (s *MemoryStore) GetUserQueries(email string, limit int) ([]models.QueryLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	var entries []models.QueryLog
	for i := len(s.queries) - 1; i >= 0 && len(entries) < limit; i-- {
		if s.queries[i].UserEmail == email {
			entries = append(entries, s.queries[i])
		}
	}

	return entries, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping() error {
	return nil
}

// Reset clears all stored data. Intended for test harnesses only.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID = 1
	s.users = make(map[string]*models.User)
	s.queries = nil
}

var _ Store = (*MemoryStore)(nil)
