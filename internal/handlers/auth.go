package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"pokedex-service/pkg/logging"
)

// AuthHandler issues bearer tokens for the stateless auth gate. The gate
// itself lives in middleware.Auth; this handler only mints tokens.
type AuthHandler struct {
	Secret   []byte
	Username string
	Password string
	TokenTTL time.Duration
}

func NewAuthHandler(secret []byte, username, password string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{
		Secret:   secret,
		Username: username,
		Password: password,
		TokenTTL: tokenTTL,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Login handles POST /api/v1/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.L(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json"})
		return
	}

	if !h.credentialsMatch(req.Username, req.Password) {
		logger.Warn("login rejected", zap.String("username", req.Username))
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid_credentials"})
		return
	}

	now := time.Now()
	expiresAt := now.Add(h.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Username,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString(h.Secret)
	if err != nil {
		logger.Error("token signing failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
	})
}

func (h *AuthHandler) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.Password)) == 1
	return userOK && passOK
}
