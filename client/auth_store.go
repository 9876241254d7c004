package client

import (
	"net/http"

	"github.com/freshmart/inventory-api/internal/models"
)

// AuthStore caches the authenticated admin and manages the bearer token,
// mirroring the frontend auth store.
type AuthStore struct {
	c    *Client
	user *models.Admin
}

func NewAuthStore(c *Client) *AuthStore {
	return &AuthStore{c: c}
}

func (s *AuthStore) User() *models.Admin   { return s.user }
func (s *AuthStore) IsAuthenticated() bool { return s.user != nil }

// Login exchanges credentials for a bearer token and caches the identity.
func (s *AuthStore) Login(email, password string) (*models.Admin, error) {
	var resp struct {
		AccessToken string       `json:"access_token"`
		User        models.Admin `json:"user"`
	}

	payload := map[string]string{"email": email, "password": password}
	if err := s.c.postJSON("/login", payload, &resp); err != nil {
		return nil, err
	}

	s.c.SetToken(resp.AccessToken)
	s.user = &resp.User
	return s.user, nil
}

// Logout revokes the server-side token. Local state is cleared even when the
// request fails, matching the frontend behavior.
func (s *AuthStore) Logout() error {
	err := s.c.do(http.MethodPost, "/logout", nil, "", nil)
	s.user = nil
	s.c.ClearToken()
	return err
}

// CheckAuth refreshes the cached identity from GET /user. On failure the
// session is dropped.
func (s *AuthStore) CheckAuth() (*models.Admin, error) {
	if s.c.Token() == "" {
		return nil, nil
	}

	var user models.Admin
	if err := s.c.do(http.MethodGet, "/user", nil, "", &user); err != nil {
		s.user = nil
		s.c.ClearToken()
		return nil, err
	}

	s.user = &user
	return s.user, nil
}
