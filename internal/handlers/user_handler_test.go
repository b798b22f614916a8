package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gramvaani/gramvaani-api/internal/config"
	"github.com/gramvaani/gramvaani-api/internal/models"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"github.com/gramvaani/gramvaani-api/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const testJwtSecret = "test-jwt-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestUserHandler() (*UserHandler, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	cfg := &config.Config{
		EnvVars: config.EnvVars{
			JwtSecretKey:    testJwtSecret,
			DefaultLocation: "Delhi, India",
		},
	}
	svc := service.NewUserService(cfg, store)
	return NewUserHandler(svc), store
}

func seedUser(store *repository.MemoryStore, email, password string) {
	hashedPwd, _ := bcrypt.GenerateFromPassword([]byte(password), 10)
	store.CreateUser(&models.User{
		Email:          email,
		HashedPassword: string(hashedPwd),
		Language:       "hi",
		Location:       "Nashik, Maharashtra",
	})
}

func TestSignup_Handler_Success(t *testing.T) {
	handler, _ := newTestUserHandler()

	r := gin.New()
	r.POST("/api/signup", handler.Signup)

	body := `{
		"email": "farmer@example.com",
		"password": "password123",
		"language": "hi",
		"location": "Nashik, Maharashtra"
	}`
	req := httptest.NewRequest("POST", "/api/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["access_token"] == nil {
		t.Error("response should contain 'access_token'")
	}
	if resp["refresh_token"] == nil {
		t.Error("response should contain 'refresh_token'")
	}
	if resp["token_type"] != "bearer" {
		t.Errorf("token_type = %v, want bearer", resp["token_type"])
	}
}

func TestSignup_Handler_MissingFields(t *testing.T) {
	handler, _ := newTestUserHandler()

	r := gin.New()
	r.POST("/api/signup", handler.Signup)

	body := `{"email": "farmer@example.com"}`
	req := httptest.NewRequest("POST", "/api/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSignup_Handler_DuplicateEmail(t *testing.T) {
	handler, store := newTestUserHandler()
	seedUser(store, "farmer@example.com", "password123")

	r := gin.New()
	r.POST("/api/signup", handler.Signup)

	body := `{"email": "farmer@example.com", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "already registered") {
		t.Errorf("body = %s, want duplicate email message", w.Body.String())
	}
}

func TestLogin_Handler_Success(t *testing.T) {
	handler, store := newTestUserHandler()
	seedUser(store, "farmer@example.com", "password123")

	r := gin.New()
	r.POST("/api/login", handler.Login)

	body := `{"email": "farmer@example.com", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)

	// The access token must name the user and carry the access type
	tokenString, _ := resp["access_token"].(string)
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJwtSecret), nil
	})
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims["sub"] != "farmer@example.com" {
		t.Errorf("sub = %v, want farmer@example.com", claims["sub"])
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
}

func TestLogin_Handler_WrongPassword(t *testing.T) {
	handler, store := newTestUserHandler()
	seedUser(store, "farmer@example.com", "password123")

	r := gin.New()
	r.POST("/api/login", handler.Login)

	body := `{"email": "farmer@example.com", "password": "wrongpass"}`
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestLogin_Handler_UnknownEmail(t *testing.T) {
	handler, _ := newTestUserHandler()

	r := gin.New()
	r.POST("/api/login", handler.Login)

	body := `{"email": "nobody@example.com", "password": "password123"}`
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestMe_Handler_ReturnsProfile(t *testing.T) {
	handler, store := newTestUserHandler()
	seedUser(store, "farmer@example.com", "password123")
	user, _ := store.GetUserByEmail("farmer@example.com")

	r := gin.New()
	r.GET("/api/me", func(c *gin.Context) {
		c.Set("user", user)
		handler.Me(c)
	})

	req := httptest.NewRequest("GET", "/api/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["email"] != "farmer@example.com" || resp["language"] != "hi" || resp["location"] != "Nashik, Maharashtra" {
		t.Errorf("profile = %v", resp)
	}
}

func TestRefreshToken_Handler_Success(t *testing.T) {
	handler, store := newTestUserHandler()
	seedUser(store, "farmer@example.com", "password123")

	refreshToken, err := generateRefreshToken("farmer@example.com", testJwtSecret)
	if err != nil {
		t.Fatalf("generateRefreshToken error: %v", err)
	}

	r := gin.New()
	r.POST("/api/refresh", handler.RefreshToken)

	body := fmt.Sprintf(`{"refresh_token": %q}`, refreshToken)
	req := httptest.NewRequest("POST", "/api/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d. body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["access_token"] == nil {
		t.Error("response should contain 'access_token'")
	}
}

func TestRefreshToken_Handler_AccessTokenRejected(t *testing.T) {
	handler, store := newTestUserHandler()
	seedUser(store, "farmer@example.com", "password123")

	accessToken, _ := generateAccessToken("farmer@example.com", testJwtSecret)

	r := gin.New()
	r.POST("/api/refresh", handler.RefreshToken)

	body := fmt.Sprintf(`{"refresh_token": %q}`, accessToken)
	req := httptest.NewRequest("POST", "/api/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d (access token must not refresh)", w.Code, http.StatusUnauthorized)
	}
}

func TestRefreshToken_Handler_DeletedAccountRejected(t *testing.T) {
	handler, _ := newTestUserHandler()

	refreshToken, _ := generateRefreshToken("gone@example.com", testJwtSecret)

	r := gin.New()
	r.POST("/api/refresh", handler.RefreshToken)

	body := fmt.Sprintf(`{"refresh_token": %q}`, refreshToken)
	req := httptest.NewRequest("POST", "/api/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
