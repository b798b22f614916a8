package service

import (
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login with an unknown email or wrong
// password. The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService is the business logic layer for account operations.
type UserService struct {
	Cfg   *config.Config
	Store repository.UserRepo
}

// NewUserService is the constructor function for initializing a new UserService.
func NewUserService(cfg *config.Config, store repository.UserRepo) *UserService {
	return &UserService{
		Cfg:   cfg,
		Store: store,
	}
}

// Signup registers a new user with a hashed password. A duplicate email is
// reported as repository.ErrDuplicateEmail.
func (s *UserService) Signup(email, password, lang, location string) (*models.User, error) {
	if err := s.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	if lang == "" {
		lang = "en"
	}
	if location == "" {
		location = s.Cfg.EnvVars.DefaultLocation
	}

	user := &models.User{
		Email:          email,
		HashedPassword: string(hashedPassword),
		Language:       lang,
		Location:       location,
	}

	return s.Store.CreateUser(user)
}

// Login verifies credentials and returns the user.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.Store.GetUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByEmail gets a user by their email address.
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	return s.Store.GetUserByEmail(email)
}

// ValidateEmail validates an email address.
func (s *UserService) ValidateEmail(email string) error {
	if !govalidator.IsEmail(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
