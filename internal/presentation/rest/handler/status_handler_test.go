package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statusapp "donation-server/internal/application/status"
	"donation-server/internal/domain/pricing"
	"donation-server/internal/infrastructure/persistence/memory"
)

func newStatusHandler(t *testing.T) *StatusHandler {
	t.Helper()
	store := newTestStore(t)
	logger, _ := newTestObservability(t)
	svc := statusapp.NewStatusApplicationService(
		pricing.NewTable(nil),
		memory.NewLedgerRepository(store),
		logger,
	)
	return NewStatusHandler(svc)
}

func TestStatusHandler_GetStatus(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		countryHeader string
		wantCurrency  string
	}{
		{
			name:         "正常系: クエリパラメータの国コードが優先される",
			target:       "/api/status?country=JP",
			wantCurrency: "JPY",
		},
		{
			name:          "正常系: CF-IPCountryヘッダーから国を推定",
			target:        "/api/status",
			countryHeader: "DE",
			wantCurrency:  "EUR",
		},
		{
			name:          "正常系: クエリパラメータはヘッダーより優先",
			target:        "/api/status?country=GB",
			countryHeader: "JP",
			wantCurrency:  "GBP",
		},
		{
			name:         "正常系: 国が不明な場合はデフォルト価格帯",
			target:       "/api/status",
			wantCurrency: "USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.countryHeader != "" {
				req.Header.Set("CF-IPCountry", tt.countryHeader)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := newStatusHandler(t).GetStatus(c)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp StatusResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, int64(42), resp.CurrentClicks)
			assert.Equal(t, int64(1000), resp.ClickGoal)
			assert.Equal(t, "Direct Relief", resp.CharityName)
			assert.Equal(t, tt.wantCurrency, resp.Currency)
		})
	}
}
