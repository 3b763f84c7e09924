package pricing

import "errors"

var (
	// ErrUnsupportedCurrency 未対応の国・通貨コードエラー
	ErrUnsupportedCurrency = errors.New("unsupported country or currency code")
)
