package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"donation-server/internal/infrastructure/config"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
)

// AuthApplicationService 認証アプリケーションサービス
//
// 運用者は単一アカウント。パスワードは環境変数にbcryptハッシュで渡される。
type AuthApplicationService struct {
	jwtConfig   *config.JWTConfig
	adminConfig *config.AdminConfig
	logger      *otelinfra.Logger
}

// NewAuthApplicationService 新しいAuthApplicationServiceを作成
func NewAuthApplicationService(jwtConfig *config.JWTConfig, adminConfig *config.AdminConfig, logger *otelinfra.Logger) *AuthApplicationService {
	return &AuthApplicationService{
		jwtConfig:   jwtConfig,
		adminConfig: adminConfig,
		logger:      logger,
	}
}

// Login 資格情報を検証してJWTトークンを発行
//
// ユーザー名・パスワードのどちらが誤っていてもErrInvalidCredentialsを返し、
// どちらが原因かは区別できないようにする。
func (s *AuthApplicationService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	tracer := otel.Tracer("auth-service")
	ctx, span := tracer.Start(ctx, "AuthApplicationService.Login")
	defer span.End()

	span.SetAttributes(
		attribute.String("username", req.Username),
	)

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.adminConfig.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.adminConfig.PasswordHash), []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		span.RecordError(ErrInvalidCredentials)
		span.SetStatus(codes.Error, ErrInvalidCredentials.Error())
		s.logger.Warn(ctx, "Login rejected", map[string]interface{}{
			"username": req.Username,
		})
		return nil, ErrInvalidCredentials
	}

	// トークンの有効期限を計算
	now := time.Now()
	expiresAt := now.Add(s.jwtConfig.Expiration)

	// JWTクレームを作成
	claims := jwt.MapClaims{
		"sub":  req.Username,
		"role": "admin",
		"iss":  s.jwtConfig.Issuer,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	// JWTトークンを生成
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error(ctx, "Failed to generate token", err, map[string]interface{}{
			"username": req.Username,
		})
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info(ctx, "Admin logged in", map[string]interface{}{
		"username":   req.Username,
		"expires_at": expiresAt.Unix(),
	})

	return &LoginResponse{
		Token:     tokenString,
		ExpiresIn: int64(s.jwtConfig.Expiration.Seconds()),
		TokenType: "Bearer",
	}, nil
}
