package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/freshmart/inventory-api/internal/middleware"
	"github.com/freshmart/inventory-api/internal/models"
)

// authRouter mirrors the real route layout: /login public, /logout and /user
// behind the bearer middleware.
func authRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.POST("/login", h.Login)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(h.JWTSecret, h.Tokens))
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/user", h.CurrentUser)
	}
	return r
}

func seedAdmin(t *testing.T, h *Handlers) models.Admin {
	t.Helper()
	var password models.Password
	if err := password.Set("password"); err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := models.Admin{ID: 1, Username: "admin", Email: "test@example.com", PasswordHash: password.Hash}
	h.Admins.(*MockAdminStore).Admins = []models.Admin{admin}
	return admin
}

func login(t *testing.T, r *gin.Engine, email, password string) (int, map[string]json.RawMessage) {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	rec := performRequest(r, "POST", "/login", bytes.NewReader(payload), "application/json")

	var body map[string]json.RawMessage
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec.Code, body
}

func TestLogin(t *testing.T) {
	t.Run("Correct credentials return a token", func(t *testing.T) {
		h, _, _ := newTestHandlers(t)
		seedAdmin(t, h)

		code, body := login(t, authRouter(h), "test@example.com", "password")

		assert.Equal(t, http.StatusOK, code)
		var token string
		assert.NoError(t, json.Unmarshal(body["access_token"], &token))
		assert.NotEmpty(t, token)

		var user models.Admin
		assert.NoError(t, json.Unmarshal(body["user"], &user))
		assert.Equal(t, "test@example.com", user.Email)
		assert.NotContains(t, string(body["user"]), "password_hash")
	})

	t.Run("Wrong password is a 401", func(t *testing.T) {
		h, _, _ := newTestHandlers(t)
		seedAdmin(t, h)

		code, _ := login(t, authRouter(h), "test@example.com", "wrong-password")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("Unknown email is an identical 401", func(t *testing.T) {
		h, _, _ := newTestHandlers(t)
		seedAdmin(t, h)

		code, body := login(t, authRouter(h), "nobody@example.com", "password")
		assert.Equal(t, http.StatusUnauthorized, code)

		var message string
		assert.NoError(t, json.Unmarshal(body["message"], &message))
		assert.Equal(t, "Invalid credentials", message)
	})

	t.Run("Missing fields are a 422", func(t *testing.T) {
		h, _, _ := newTestHandlers(t)

		rec := performRequest(authRouter(h), "POST", "/login",
			bytes.NewBufferString(`{"email":"not-an-email"}`), "application/json")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "email")
		assert.Contains(t, rec.Body.String(), "password")
	})
}

func TestBearerProtection(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	seedAdmin(t, h)
	r := authRouter(h)

	t.Run("No token", func(t *testing.T) {
		rec := performRequest(r, "GET", "/user", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		req := performRequestWithAuth(r, "GET", "/user", "not-a-bearer-token")
		assert.Equal(t, http.StatusUnauthorized, req.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := performRequestWithAuth(r, "GET", "/user", "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, req.Code)
	})

	t.Run("Valid token resolves the identity", func(t *testing.T) {
		code, body := login(t, r, "test@example.com", "password")
		assert.Equal(t, http.StatusOK, code)
		var token string
		assert.NoError(t, json.Unmarshal(body["access_token"], &token))

		rec := performRequestWithAuth(r, "GET", "/user", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)

		var user models.Admin
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("Logout revokes the token", func(t *testing.T) {
		code, body := login(t, r, "test@example.com", "password")
		assert.Equal(t, http.StatusOK, code)
		var token string
		assert.NoError(t, json.Unmarshal(body["access_token"], &token))

		rec := performRequestWithAuth(r, "POST", "/logout", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)

		// The signature is still valid, but the server-side row is gone.
		rec = performRequestWithAuth(r, "GET", "/user", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func performRequestWithAuth(r *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authHeader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
