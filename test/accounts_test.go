//go:build integration_test || all_tests

package test

import (
	"net/http"

	"github.com/2beens/ironlog/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestPublicRoutes() {
	t := s.T()

	status, body := s.call(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body)

	status, body = s.call(t, http.MethodGet, "/version", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "test-version-info")
}

func (s *IntegrationTestSuite) TestSignupLoginLogout() {
	t := s.T()
	u := s.signup(t)

	cases := map[string]struct {
		req        users.SignupRequest
		wantStatus int
	}{
		"taken username": {
			req:        users.SignupRequest{Username: u.Username, Email: "other-" + u.Username + "@ironlog.test", Password: "secret-pass"},
			wantStatus: http.StatusConflict,
		},
		"short password": {
			req:        users.SignupRequest{Username: u.Username + "_x", Email: u.Username + "_x@ironlog.test", Password: "123"},
			wantStatus: http.StatusBadRequest,
		},
		"missing email": {
			req:        users.SignupRequest{Username: u.Username + "_y", Password: "secret-pass"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for name, tc := range cases {
		status, body := s.call(t, http.MethodPost, "/a/signup", "", tc.req)
		assert.Equal(t, tc.wantStatus, status, "%s: %s", name, body)
	}

	status, _ := s.call(t, http.MethodPost, "/a/login", "", users.LoginRequest{Username: u.Username, Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)

	var login users.LoginResponse
	s.callJSON(t, http.MethodPost, "/a/login", "", users.LoginRequest{Username: u.Username, Password: u.Password}, http.StatusOK, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, u.ID, login.UserID)
	assert.NotEqual(t, u.Token, login.Token)

	var me users.User
	s.callJSON(t, http.MethodGet, "/a/me", login.Token, nil, http.StatusOK, &me)
	assert.Equal(t, u.Username, me.Username)
	assert.Equal(t, u.ID, me.ID)

	var loggedOut users.LogoutResponse
	s.callJSON(t, http.MethodPost, "/a/logout", login.Token, nil, http.StatusOK, &loggedOut)
	assert.True(t, loggedOut.LoggedOut)

	status, _ = s.call(t, http.MethodGet, "/a/me", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// the signup token is a separate session and still works
	s.callJSON(t, http.MethodGet, "/a/me", u.Token, nil, http.StatusOK, &me)

	var hash string
	require.NoError(t, s.DB.QueryRow(`SELECT password_hash FROM app_user WHERE id = $1`, u.ID).Scan(&hash))
	assert.NotEqual(t, u.Password, hash)
}

func (s *IntegrationTestSuite) TestProtectedRoutesNeedToken() {
	t := s.T()
	for _, path := range []string{"/api/sessions", "/api/exercises", "/api/bodyweight", "/api/analytics/overview", "/a/me"} {
		status, _ := s.call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)

		status, _ = s.call(t, http.MethodGet, path, "not-a-real-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}
