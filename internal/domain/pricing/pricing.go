package pricing

import (
	"strings"
)

// PriceTier 国・通貨ごとの固定価格ティア
type PriceTier struct {
	Country       string // ISO 3166-1 alpha-2 国コード（代表国）
	Currency      string // ISO 4217 通貨コード
	UnitAmount    int64  // 通貨の最小単位での金額（Stripeのunit_amount形式）
	DisplayAmount string // 表示用の金額文字列
	StripePriceID string // 事前作成済みのStripe Price ID（空ならインラインのprice_dataを使用）
	USDCents      int64  // 1クリックあたりの米ドルセント換算額（固定の概算レート）
}

// Table 国コード・通貨コードから価格ティアへの静的な変換テーブル
//
// 参照のみで変異しない。Lookupは全域関数で、未知のコードにはデフォルト
// （米ドル）ティアを返す。明示的に指定されたコードを検証したい場合はFindを使う。
type Table struct {
	tiers       map[string]PriceTier // 通貨コード -> ティア
	byCountry   map[string]string    // 国コード -> 通貨コード
	defaultTier PriceTier
}

// 米ドル換算レートは固定の概算値であり、為替の正確さは保証しない。
var defaultTiers = []PriceTier{
	{Country: "US", Currency: "USD", UnitAmount: 100, DisplayAmount: "$1.00", USDCents: 100},
	{Country: "DE", Currency: "EUR", UnitAmount: 100, DisplayAmount: "€1.00", USDCents: 110},
	{Country: "GB", Currency: "GBP", UnitAmount: 100, DisplayAmount: "£1.00", USDCents: 125},
	{Country: "JP", Currency: "JPY", UnitAmount: 150, DisplayAmount: "¥150", USDCents: 100},
	{Country: "IN", Currency: "INR", UnitAmount: 9000, DisplayAmount: "₹90", USDCents: 105},
	{Country: "CA", Currency: "CAD", UnitAmount: 150, DisplayAmount: "C$1.50", USDCents: 108},
	{Country: "AU", Currency: "AUD", UnitAmount: 150, DisplayAmount: "A$1.50", USDCents: 98},
	{Country: "BR", Currency: "BRL", UnitAmount: 500, DisplayAmount: "R$5.00", USDCents: 95},
}

// ユーロ圏など、代表国以外で同一通貨を使う国のマッピング
var extraCountries = map[string]string{
	"AT": "EUR", "BE": "EUR", "ES": "EUR", "FI": "EUR", "FR": "EUR",
	"GR": "EUR", "IE": "EUR", "IT": "EUR", "NL": "EUR", "PT": "EUR",
}

// NewTable デフォルトのティアで新しいTableを作成
//
// priceIDsは通貨コードからStripe Price IDへの上書きマップ（nil可）。
func NewTable(priceIDs map[string]string) *Table {
	t := &Table{
		tiers:     make(map[string]PriceTier, len(defaultTiers)),
		byCountry: make(map[string]string, len(defaultTiers)+len(extraCountries)),
	}
	for _, tier := range defaultTiers {
		if id, ok := priceIDs[tier.Currency]; ok {
			tier.StripePriceID = id
		}
		t.tiers[tier.Currency] = tier
		t.byCountry[tier.Country] = tier.Currency
	}
	for country, cur := range extraCountries {
		t.byCountry[country] = cur
	}
	t.defaultTier = t.tiers["USD"]
	return t
}

// Lookup 国コードまたは通貨コードからティアを取得する全域関数
//
// 未知のコードにはエラーではなくデフォルト（米ドル）ティアを返す。
func (t *Table) Lookup(code string) PriceTier {
	tier, err := t.Find(code)
	if err != nil {
		return t.defaultTier
	}
	return tier
}

// Find 国コードまたは通貨コードからティアを取得する
//
// 未知のコードにはErrUnsupportedCurrencyを返す。明示的にコードを指定する
// チェックアウトリクエストの検証に使う。
func (t *Table) Find(code string) (PriceTier, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return PriceTier{}, ErrUnsupportedCurrency
	}
	if tier, ok := t.tiers[code]; ok {
		return tier, nil
	}
	if cur, ok := t.byCountry[code]; ok {
		return t.tiers[cur], nil
	}
	return PriceTier{}, ErrUnsupportedCurrency
}

// Default デフォルト（米ドル）ティアを返す
func (t *Table) Default() PriceTier {
	return t.defaultTier
}
