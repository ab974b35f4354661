//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/ironlog/internal/auth"
	"github.com/2beens/ironlog/internal/gymstats/exercises"
	"github.com/2beens/ironlog/internal/gymstats/sessions"
	"github.com/2beens/ironlog/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type testUser struct {
	ID       int
	Username string
	Password string
	Token    string
}

// call sends an API request and returns the status and the raw body.
func (s *IntegrationTestSuite) call(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ironlog-integration-test")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBytes
}

// callJSON is call that also requires the expected status and decodes the body into out.
func (s *IntegrationTestSuite) callJSON(t *testing.T, method, path, token string, body any, wantStatus int, out any) {
	t.Helper()
	status, respBytes := s.call(t, method, path, token, body)
	require.Equal(t, wantStatus, status, "%s %s: %s", method, path, respBytes)
	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out), string(respBytes))
	}
}

func (s *IntegrationTestSuite) signup(t *testing.T) testUser {
	t.Helper()
	u := testUser{
		Username: fmt.Sprintf("%s_%d", gofakeit.Username(), gofakeit.Number(1_000, 9_999_999)),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}

	var resp users.LoginResponse
	s.callJSON(t, http.MethodPost, "/a/signup", "", users.SignupRequest{
		Username: u.Username,
		Email:    fmt.Sprintf("%s@%s", u.Username, gofakeit.DomainName()),
		Password: u.Password,
	}, http.StatusCreated, &resp)
	require.NotEmpty(t, resp.Token)
	require.Positive(t, resp.UserID)

	u.ID = resp.UserID
	u.Token = resp.Token
	return u
}

func (s *IntegrationTestSuite) newSession(t *testing.T, u testUser, date string) sessions.Session {
	t.Helper()
	body := map[string]any{"notes": gofakeit.Sentence(4)}
	if date != "" {
		body["date"] = date
	}
	var session sessions.Session
	s.callJSON(t, http.MethodPost, "/api/sessions", u.Token, body, http.StatusCreated, &session)
	return session
}

func (s *IntegrationTestSuite) logSet(t *testing.T, u testUser, req sessions.NewSetRequest) int {
	t.Helper()
	var created sessions.CreatedResponse
	s.callJSON(t, http.MethodPost, "/api/sets", u.Token, req, http.StatusCreated, &created)
	return created.ID
}

func (s *IntegrationTestSuite) exerciseID(t *testing.T, u testUser, name string) int {
	t.Helper()
	var list []exercises.Exercise
	s.callJSON(t, http.MethodGet, "/api/exercises", u.Token, nil, http.StatusOK, &list)
	for _, e := range list {
		if e.Name == name {
			return e.ID
		}
	}
	t.Fatalf("exercise %q not visible", name)
	return 0
}

func daysAgo(n int) string {
	return time.Now().UTC().AddDate(0, 0, -n).Format(time.DateOnly)
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
