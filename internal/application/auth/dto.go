package auth

// LoginRequest 運用者ログインリクエスト
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 運用者ログインレスポンス
type LoginResponse struct {
	Token     string
	ExpiresIn int64  // 秒単位
	TokenType string // "Bearer"
}
