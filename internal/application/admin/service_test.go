package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"donation-server/internal/domain/ledger"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
	"donation-server/internal/infrastructure/persistence/memory"
)

func newTestService(t *testing.T) (*AdminApplicationService, *memory.Store) {
	t.Helper()

	store := memory.NewStore(ledger.MustNewLedger(42, 1000, 4200, "Direct Relief", 50))
	tracer := otel.Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	svc := NewAdminApplicationService(
		memory.NewLedgerRepository(store),
		memory.NewDonationRepository(store),
		store,
		logger,
		metrics,
	)
	return svc, store
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }
func intPtr(v int) *int       { return &v }

func TestAdminApplicationService_GetSettings(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Direct Relief", resp.CharityName)
	assert.Equal(t, int64(1000), resp.ClickGoal)
	assert.Equal(t, 50, resp.DonationPercent)
	assert.Equal(t, int64(42), resp.CurrentClicks)
	assert.Equal(t, int64(4200), resp.TotalRaisedCents)
}

func TestAdminApplicationService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 指定されたフィールドのみ更新される", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.UpdateSettings(ctx, &UpdateSettingsRequest{
			CharityName:  strPtr("Charity: Water"),
			ContactEmail: strPtr("ops@example.org"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Charity: Water", resp.CharityName)
		assert.Equal(t, "ops@example.org", resp.ContactEmail)
		assert.Equal(t, int64(1000), resp.ClickGoal)
		assert.Equal(t, 50, resp.DonationPercent)
	})

	t.Run("正常系: 目標と寄付割合の更新", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.UpdateSettings(ctx, &UpdateSettingsRequest{
			ClickGoal:       i64Ptr(5000),
			DonationPercent: intPtr(80),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5000), resp.ClickGoal)
		assert.Equal(t, 80, resp.DonationPercent)
	})

	t.Run("異常系: 検証エラーの場合は何も変更されない", func(t *testing.T) {
		svc, store := newTestService(t)

		_, err := svc.UpdateSettings(ctx, &UpdateSettingsRequest{
			CharityName: strPtr("Charity: Water"),
			ClickGoal:   i64Ptr(-1),
		})
		assert.ErrorIs(t, err, ledger.ErrInvalidGoal)

		l, err := memory.NewLedgerRepository(store).Find(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Direct Relief", l.CharityName())
		assert.Equal(t, int64(1000), l.ClickGoal())
	})
}

func TestAdminApplicationService_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: カウンターがゼロに戻り新しい目標が設定される", func(t *testing.T) {
		svc, store := newTestService(t)

		resp, err := svc.Reset(ctx, &ResetRequest{ClickGoal: 2000})
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.CurrentClicks)
		assert.Equal(t, int64(0), resp.TotalRaisedCents)
		assert.Equal(t, int64(2000), resp.ClickGoal)

		l, err := memory.NewLedgerRepository(store).Find(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), l.ClickCount())
		assert.Equal(t, int64(2000), l.ClickGoal())
	})

	t.Run("正常系: 目標未指定の場合は現在の目標を維持", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.Reset(ctx, &ResetRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.CurrentClicks)
		assert.Equal(t, int64(1000), resp.ClickGoal)
	})
}

func TestAdminApplicationService_ListDonations(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	donationRepo := memory.NewDonationRepository(store)
	require.NoError(t, donationRepo.Save(ctx, &ledger.DonationDue{
		DonationID:  "dn_1",
		CharityName: "Direct Relief",
		AmountCents: 150,
		GoalReached: 3,
		OccurredAt:  time.Now(),
	}))

	t.Run("正常系: 記録された寄付予定が返る", func(t *testing.T) {
		resp, err := svc.ListDonations(ctx, &ListDonationsRequest{Limit: 10})
		require.NoError(t, err)
		require.Len(t, resp.Donations, 1)
		assert.Equal(t, "dn_1", resp.Donations[0].DonationID)
		assert.Equal(t, int64(150), resp.Donations[0].AmountCents)
	})

	t.Run("正常系: limit未指定はデフォルト件数", func(t *testing.T) {
		resp, err := svc.ListDonations(ctx, &ListDonationsRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Donations, 1)
	})
}
