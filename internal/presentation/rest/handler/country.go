package handler

import "github.com/labstack/echo/v4"

// countryHeader エッジプロキシが付与する国コードヘッダー
const countryHeader = "CF-IPCountry"

// resolveCountry 閲覧者の国コードを決定する
//
// クエリパラメータでの明示指定をエッジプロキシの推定より優先する。
// どちらも無い場合は空文字を返し、価格表側でデフォルトに解決される。
func resolveCountry(c echo.Context) string {
	if country := c.QueryParam("country"); country != "" {
		return country
	}
	return c.Request().Header.Get(countryHeader)
}
