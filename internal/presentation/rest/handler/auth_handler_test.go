package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authapp "donation-server/internal/application/auth"
	"donation-server/internal/infrastructure/config"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	logger, _ := newTestObservability(t)
	svc := authapp.NewAuthApplicationService(
		&config.JWTConfig{
			Secret:     "test-secret",
			Issuer:     "test-issuer",
			Expiration: time.Hour,
		},
		&config.AdminConfig{
			Username:     "admin",
			PasswordHash: string(hash),
		},
		logger,
	)
	return NewAuthHandler(svc)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("正常系: 正しい資格情報でトークンが返る", func(t *testing.T) {
		e := echo.New()
		c, rec := postJSON(e, "/api/admin/login", `{"username":"admin","password":"correct-horse"}`)

		err := newAuthHandler(t).Login(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, 3600, resp.ExpiresIn)
	})

	t.Run("異常系: 誤ったパスワード", func(t *testing.T) {
		e := echo.New()
		c, _ := postJSON(e, "/api/admin/login", `{"username":"admin","password":"wrong"}`)

		err := newAuthHandler(t).Login(c)
		assert.ErrorIs(t, err, authapp.ErrInvalidCredentials)
	})

	t.Run("異常系: 資格情報が欠落", func(t *testing.T) {
		e := echo.New()
		c, _ := postJSON(e, "/api/admin/login", `{"username":"admin"}`)

		err := newAuthHandler(t).Login(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("異常系: 不正なリクエストボディ", func(t *testing.T) {
		e := echo.New()
		c, _ := postJSON(e, "/api/admin/login", `{invalid`)

		err := newAuthHandler(t).Login(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}
