package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/bookhive/internal/models"
)

func TestBookCatalogAdminFlow(t *testing.T) {
	env := setup(t)
	env.createVerifiedUser(t, "Admin", "admin@x.com", "password1", models.RoleAdmin)
	env.createVerifiedUser(t, "Alice", "a@x.com", "password1", models.RoleUser)
	adminCookie := env.login(t, "admin@x.com", "password1")
	userCookie := env.login(t, "a@x.com", "password1")

	// Non-admins cannot add books.
	resp, _ := env.request(t, http.MethodPost, "/api/v1/book/admin/add", fiber.Map{
		"title": "T", "author": "A", "description": "D", "price": 1.0, "quantity": 1,
	}, userCookie)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	resp, body := env.request(t, http.MethodPost, "/api/v1/book/admin/add", fiber.Map{
		"title":       "The Go Programming Language",
		"author":      "Donovan & Kernighan",
		"description": "The definitive Go book.",
		"price":       39.99,
		"quantity":    3,
	}, adminCookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}
	created, _ := body["book"].(map[string]interface{})
	if created["availability"] != true {
		t.Error("book with stock must be available")
	}

	_, body = env.request(t, http.MethodGet, "/api/v1/book/all", nil, userCookie)
	books, _ := body["books"].([]interface{})
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}

	id, _ := created["id"].(string)
	resp, _ = env.request(t, http.MethodDelete, "/api/v1/book/delete/"+id, nil, adminCookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, body = env.request(t, http.MethodDelete, "/api/v1/book/delete/"+id, nil, adminCookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated delete, got %d: %v", resp.StatusCode, body)
	}
}

func TestPYQListingAndAdminGate(t *testing.T) {
	env := setup(t)
	env.createVerifiedUser(t, "Admin", "admin@x.com", "password1", models.RoleAdmin)
	env.createVerifiedUser(t, "Alice", "a@x.com", "password1", models.RoleUser)
	adminCookie := env.login(t, "admin@x.com", "password1")
	userCookie := env.login(t, "a@x.com", "password1")

	resp, body := env.request(t, http.MethodPost, "/api/v1/pyq/admin/add", fiber.Map{
		"title":   "Data Structures Midterm",
		"subject": "CS201",
		"year":    2024,
		"fileUrl": "https://files.example.com/pyq/cs201-2024.pdf",
	}, adminCookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}

	resp, _ = env.request(t, http.MethodPost, "/api/v1/pyq/admin/add", fiber.Map{
		"title": "incomplete",
	}, adminCookie)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.StatusCode)
	}

	_, body = env.request(t, http.MethodGet, "/api/v1/pyq/all", nil, userCookie)
	pyqs, _ := body["pyqs"].([]interface{})
	if len(pyqs) != 1 {
		t.Fatalf("expected 1 pyq, got %d", len(pyqs))
	}

	resp, _ = env.request(t, http.MethodPost, "/api/v1/pyq/admin/add", fiber.Map{
		"title": "T", "subject": "S", "year": 2020, "fileUrl": "u",
	}, userCookie)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
}

func TestUserAdministration(t *testing.T) {
	env := setup(t)
	env.createVerifiedUser(t, "Admin", "admin@x.com", "password1", models.RoleAdmin)
	env.createVerifiedUser(t, "Alice", "a@x.com", "password1", models.RoleUser)
	adminCookie := env.login(t, "admin@x.com", "password1")
	userCookie := env.login(t, "a@x.com", "password1")

	// Unverified records never show up in the listing.
	env.request(t, http.MethodPost, "/api/v1/auth/register", fiber.Map{
		"name": "Pending", "email": "pending@x.com", "password": "password1",
	})

	_, body := env.request(t, http.MethodGet, "/api/v1/user/all", nil, adminCookie)
	users, _ := body["users"].([]interface{})
	if len(users) != 2 {
		t.Fatalf("expected 2 verified users, got %d", len(users))
	}

	resp, _ := env.request(t, http.MethodGet, "/api/v1/user/all", nil, userCookie)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	resp, body = env.request(t, http.MethodPost, "/api/v1/user/add/new-admin", fiber.Map{
		"name": "Second Admin", "email": "admin2@x.com", "password": "password1",
	}, adminCookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}

	var admin models.User
	if err := env.db.First(&admin, "email = ?", "admin2@x.com").Error; err != nil {
		t.Fatal(err)
	}
	if !admin.AccountVerified {
		t.Error("new admins must be created pre-verified")
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("expected Admin role, got %q", admin.Role)
	}

	// The fresh admin can log in straight away.
	env.login(t, "admin2@x.com", "password1")
}
