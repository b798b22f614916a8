package service

import (
	"errors"
	"testing"

	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var errTestService = errors.New("test error")

func newUserService() *UserService {
	cfg := &config.Config{}
	cfg.EnvVars.DefaultLocation = "Delhi, India"
	return NewUserService(cfg, repository.NewMemoryStore())
}

func TestSignup_CreatesUserWithHashedPassword(t *testing.T) {
	svc := newUserService()

	user, err := svc.Signup("farmer@example.com", "password123", "hi", "Nashik, Maharashtra")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	if user.Email != "farmer@example.com" || user.Language != "hi" || user.Location != "Nashik, Maharashtra" {
		t.Errorf("user = %+v", user)
	}
	if user.HashedPassword == "password123" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestSignup_Defaults(t *testing.T) {
	svc := newUserService()

	user, err := svc.Signup("farmer@example.com", "password123", "", "")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	if user.Language != "en" {
		t.Errorf("Language = %q, want en", user.Language)
	}
	if user.Location != "Delhi, India" {
		t.Errorf("Location = %q, want configured default", user.Location)
	}
}

func TestSignup_RejectsInvalidEmail(t *testing.T) {
	svc := newUserService()

	if _, err := svc.Signup("not-an-email", "password123", "", ""); err == nil {
		t.Error("Signup should reject malformed email")
	}
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	svc := newUserService()

	if _, err := svc.Signup("farmer@example.com", "abc", "", ""); err == nil {
		t.Error("Signup should reject passwords under 6 characters")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newUserService()

	if _, err := svc.Signup("farmer@example.com", "password123", "", ""); err != nil {
		t.Fatalf("first Signup error: %v", err)
	}
	_, err := svc.Signup("farmer@example.com", "different1", "", "")
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newUserService()
	if _, err := svc.Signup("farmer@example.com", "password123", "hi", ""); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	user, err := svc.Login("farmer@example.com", "password123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.Email != "farmer@example.com" {
		t.Errorf("Email = %q", user.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newUserService()
	if _, err := svc.Signup("farmer@example.com", "password123", "", ""); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	_, err := svc.Login("farmer@example.com", "wrongpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newUserService()

	_, err := svc.Login("nobody@example.com", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
