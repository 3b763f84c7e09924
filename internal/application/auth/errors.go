package auth

import "errors"

// ErrInvalidCredentials ユーザー名またはパスワードが一致しない
var ErrInvalidCredentials = errors.New("invalid credentials")
