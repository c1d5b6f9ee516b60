package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cuentadante-api/internal/application/analytics"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	infracache "github.com/jhoicas/cuentadante-api/internal/infrastructure/cache"
	"github.com/jhoicas/cuentadante-api/internal/testutil/memstore"
)

// assetWithValue fija un precio de compra distinto al valor actual: el tablero agrega solo el valor actual.
func assetWithValue(status string, value int64) *entity.Asset {
	a := memstore.FakeAsset()
	a.Status = status
	purchase := decimal.NewFromInt(value * 3)
	current := decimal.NewFromInt(value)
	a.PurchasePrice = &purchase
	a.CurrentValue = &current
	if status == entity.AssetStatusAssigned {
		now := time.Now()
		a.Assign("Custodio", now, entity.DateOnly(now).AddDate(0, 0, 10), nil)
	}
	return a
}

func TestGetStats_ConteosYValores(t *testing.T) {
	store := memstore.New()
	store.PutAsset(assetWithValue(entity.AssetStatusAvailable, 1_000_000))
	store.PutAsset(assetWithValue(entity.AssetStatusAvailable, 2_000_000))
	assigned := store.PutAsset(assetWithValue(entity.AssetStatusAssigned, 3_000_000))
	store.PutAsset(assetWithValue(entity.AssetStatusMaintenance, 500_000))
	store.PutAsset(assetWithValue(entity.AssetStatusRetired, 100_000))

	store.PutRequest(memstore.FakePendingRequest(assigned.ID))
	approved := memstore.FakePendingRequest(assigned.ID)
	approved.Approve("Laura", "", time.Now())
	store.PutRequest(approved)
	rejected := memstore.FakePendingRequest(assigned.ID)
	rejected.Reject("Laura", "No", time.Now())
	store.PutRequest(rejected)

	uc := analytics.NewDashboardUseCase(store.Dashboard(), nil, analytics.DashboardConfig{})
	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 5, stats.TotalAssets)
	assert.EqualValues(t, 2, stats.AvailableAssets)
	assert.EqualValues(t, 1, stats.AssignedAssets)
	assert.EqualValues(t, 1, stats.MaintenanceAssets)
	assert.EqualValues(t, 1, stats.RetiredAssets)
	assert.Equal(t, stats.TotalAssets,
		stats.AvailableAssets+stats.AssignedAssets+stats.MaintenanceAssets+stats.RetiredAssets)

	assert.EqualValues(t, 3, stats.TotalRequests)
	assert.Equal(t, stats.TotalRequests, stats.PendingRequests+stats.ApprovedRequests+stats.RejectedRequests)

	assert.True(t, decimal.NewFromInt(6_600_000).Equal(stats.TotalAssetValue), stats.TotalAssetValue.String())
	assert.True(t, decimal.NewFromInt(1_320_000).Equal(stats.AvgAssetValue), stats.AvgAssetValue.String())
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestGetStats_AgregaValorActual(t *testing.T) {
	store := memstore.New()
	a := memstore.FakeAsset()
	purchase, current := decimal.NewFromInt(1000), decimal.NewFromInt(400)
	a.PurchasePrice, a.CurrentValue = &purchase, &current
	store.PutAsset(a)

	sinValor := memstore.FakeAsset()
	sinValor.PurchasePrice = &purchase
	sinValor.CurrentValue = nil
	store.PutAsset(sinValor)

	uc := analytics.NewDashboardUseCase(store.Dashboard(), nil, analytics.DashboardConfig{})
	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalAssets)
	assert.True(t, decimal.NewFromInt(400).Equal(stats.TotalAssetValue), stats.TotalAssetValue.String())
	assert.True(t, decimal.NewFromInt(400).Equal(stats.AvgAssetValue), stats.AvgAssetValue.String())
}

func TestGetStats_VacioRetornaCeros(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memstore.New().Dashboard(), nil, analytics.DashboardConfig{})
	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAssets)
	assert.Zero(t, stats.TotalMovements)
	assert.True(t, stats.AvgAssetValue.IsZero())
}

func TestGetStats_CacheEInvalidacion(t *testing.T) {
	store := memstore.New()
	store.PutAsset(assetWithValue(entity.AssetStatusAvailable, 100))
	uc := analytics.NewDashboardUseCase(store.Dashboard(), infracache.NewStatsCache(time.Minute), analytics.DashboardConfig{})
	ctx := context.Background()

	first, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.TotalAssets)

	store.PutAsset(assetWithValue(entity.AssetStatusAvailable, 100))
	cached, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cached.TotalAssets, "sin invalidar se sirve la foto en caché")

	uc.Invalidate()
	fresh, err := uc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, fresh.TotalAssets)
}

func TestExpiringAssets_Clasificacion(t *testing.T) {
	store := memstore.New()
	today := entity.DateOnly(time.Now())
	put := func(name string, days int) {
		a := memstore.FakeAsset()
		a.Name = name
		a.Assign("Custodio "+name, today.AddDate(0, 0, -10), today.AddDate(0, 0, days), nil)
		store.PutAsset(a)
	}
	put("lejano", 45)
	put("en tiempo", 20)
	put("por vencer", 3)
	put("vencido", -2)
	store.PutAsset(memstore.FakeAsset())

	uc := analytics.NewDashboardUseCase(store.Dashboard(), nil, analytics.DashboardConfig{LookaheadDays: 30, DueSoonDays: 7})
	out, err := uc.ExpiringAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3, "fuera de la ventana y no asignados se excluyen")

	assert.Equal(t, "vencido", out[0].Name)
	assert.Equal(t, entity.ReturnStatusOverdue, out[0].ReturnStatus)
	assert.Equal(t, -2, out[0].DaysRemaining)

	assert.Equal(t, "por vencer", out[1].Name)
	assert.Equal(t, entity.ReturnStatusDueSoon, out[1].ReturnStatus)
	assert.Equal(t, 3, out[1].DaysRemaining)

	assert.Equal(t, "en tiempo", out[2].Name)
	assert.Equal(t, entity.ReturnStatusOnTime, out[2].ReturnStatus)
	assert.Equal(t, today.AddDate(0, 0, 20).Format("2006-01-02"), out[2].ExpectedReturnDate)
	assert.Equal(t, "Custodio en tiempo", out[2].AssignedTo)
}
