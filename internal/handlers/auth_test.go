package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthHandler() *AuthHandler {
	return NewAuthHandler([]byte("test-secret"), "ash", "pikapika", time.Hour)
}

func doLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	return rr
}

func TestLoginIssuesToken(t *testing.T) {
	h := newTestAuthHandler()

	rr := doLogin(t, h, `{"username":"ash","password":"pikapika"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "ash", sub)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newTestAuthHandler()

	for _, body := range []string{
		`{"username":"ash","password":"wrong"}`,
		`{"username":"team-rocket","password":"pikapika"}`,
		`{}`,
	} {
		rr := doLogin(t, h, body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, body)
		assert.Contains(t, rr.Body.String(), "invalid_credentials")
	}
}

func TestLoginRejectsInvalidJSON(t *testing.T) {
	h := newTestAuthHandler()

	rr := doLogin(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
