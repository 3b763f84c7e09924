package handler

// LoginRequest 運用者ログインリクエスト
// @Description 運用者ログインリクエスト
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"correct-horse-battery-staple"`
}

// LoginResponse 運用者ログインレスポンス
// @Description 運用者ログインレスポンス
type LoginResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJhZG1pbiIsImV4cCI6MTcwMDAwMDAwMH0.signature"`
	ExpiresIn int    `json:"expires_in" example:"86400"`
	TokenType string `json:"token_type" example:"Bearer"`
}
