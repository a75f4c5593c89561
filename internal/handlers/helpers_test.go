package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/config"
	"github.com/example/bookhive/internal/database"
	"github.com/example/bookhive/internal/handlers"
	"github.com/example/bookhive/internal/models"
	"github.com/example/bookhive/internal/routes"
	"github.com/example/bookhive/internal/utils"
)

// stubMailer records outgoing mail instead of dialing SMTP.
type stubMailer struct {
	fail       bool
	lastCode   int
	lastEmail  string
	lastURL    string
	codesSent  int
	resetsSent int
}

func (m *stubMailer) SendVerificationCode(email string, code int) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.lastEmail = email
	m.lastCode = code
	m.codesSent++
	return nil
}

func (m *stubMailer) SendPasswordReset(email, resetURL string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.lastEmail = email
	m.lastURL = resetURL
	m.resetsSent++
	return nil
}

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	mailer *stubMailer
	cfg    *config.Config
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	cfg := &config.Config{
		AppEnv:        "test",
		JWTSecret:     "test-secret-key-32-chars-long!!!",
		TokenExpires:  time.Hour,
		CookieExpires: time.Hour,
		FrontendURL:   "http://localhost:5173",
		OTPExpires:    10 * time.Minute,
		ResetExpires:  15 * time.Minute,
		BorrowPeriod:  7 * 24 * time.Hour,
		FinePerHour:   0.1,
	}

	mailer := &stubMailer{}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Register(app, db, cfg, mailer)

	return &testEnv{app: app, db: db, mailer: mailer, cfg: cfg}
}

// request issues a JSON request against the app and decodes the JSON response.
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	resp.Body.Close()

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}
	return resp, decoded
}

// createVerifiedUser inserts a verified account directly into the store.
func (e *testEnv) createVerifiedUser(t *testing.T, name, email, password, role string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		Role:            role,
		AccountVerified: true,
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}

// login returns the session cookie for an existing verified user.
func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d: %v", resp.StatusCode, body)
	}
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	return cookie
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	return nil
}

func message(body map[string]interface{}) string {
	s, _ := body["message"].(string)
	return s
}
