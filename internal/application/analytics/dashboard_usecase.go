// Package analytics contiene los casos de uso del tablero del cuentadante:
// estadísticas agregadas y bienes con devolución próxima.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
	"github.com/jhoicas/cuentadante-api/internal/observability"
)

// StatsCache guarda la última foto de estadísticas del tablero.
type StatsCache interface {
	GetStats() (*dto.DashboardStatsDTO, bool)
	SetStats(stats *dto.DashboardStatsDTO)
	Invalidate()
}

// DashboardConfig parámetros de clasificación de devoluciones.
type DashboardConfig struct {
	LookaheadDays int // ventana hacia adelante para bienes por vencer
	DueSoonDays   int // umbral de "por_vencer"
}

// DashboardUseCase agrega conteos de bienes, solicitudes y movimientos.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo  repository.DashboardRepository
	cache StatsCache
	cfg   DashboardConfig
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(repo repository.DashboardRepository, cache StatsCache, cfg DashboardConfig) *DashboardUseCase {
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 30
	}
	if cfg.DueSoonDays <= 0 {
		cfg.DueSoonDays = 7
	}
	return &DashboardUseCase{repo: repo, cache: cache, cfg: cfg}
}

// GetStats construye el DashboardStatsDTO.
//
// Tres llamadas en paralelo:
//  1. CountAssets    → conteos por estado + valor actual
//  2. CountRequests  → conteos por estado
//  3. CountMovements → total de movimientos
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	if uc.cache != nil {
		if stats, ok := uc.cache.GetStats(); ok {
			observability.DashboardCacheLookups.WithLabelValues("hit").Inc()
			return stats, nil
		}
		observability.DashboardCacheLookups.WithLabelValues("miss").Inc()
	}

	type assetsResult struct {
		counts repository.AssetCounts
		err    error
	}
	type requestsResult struct {
		counts repository.RequestCounts
		err    error
	}
	type movementsResult struct {
		total int64
		err   error
	}

	assetsCh := make(chan assetsResult, 1)
	requestsCh := make(chan requestsResult, 1)
	movementsCh := make(chan movementsResult, 1)

	go func() {
		c, err := uc.repo.CountAssets(ctx)
		assetsCh <- assetsResult{c, err}
	}()
	go func() {
		c, err := uc.repo.CountRequests(ctx)
		requestsCh <- requestsResult{c, err}
	}()
	go func() {
		n, err := uc.repo.CountMovements(ctx)
		movementsCh <- movementsResult{n, err}
	}()

	assets := <-assetsCh
	requests := <-requestsCh
	movements := <-movementsCh

	if assets.err != nil {
		return nil, fmt.Errorf("dashboard: bienes: %w", assets.err)
	}
	if requests.err != nil {
		return nil, fmt.Errorf("dashboard: solicitudes: %w", requests.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", movements.err)
	}

	stats := &dto.DashboardStatsDTO{
		TotalAssets:       assets.counts.Total,
		AvailableAssets:   assets.counts.Available,
		AssignedAssets:    assets.counts.Assigned,
		MaintenanceAssets: assets.counts.Maintenance,
		RetiredAssets:     assets.counts.Retired,
		PendingRequests:   requests.counts.Pending,
		ApprovedRequests:  requests.counts.Approved,
		RejectedRequests:  requests.counts.Rejected,
		TotalRequests:     requests.counts.Total,
		TotalMovements:    movements.total,
		AvgAssetValue:     assets.counts.AvgValue.Round(2),
		TotalAssetValue:   assets.counts.TotalValue.Round(2),
		GeneratedAt:       time.Now(),
	}
	if uc.cache != nil {
		uc.cache.SetStats(stats)
	}
	return stats, nil
}

// ExpiringAssets lista bienes asignados vencidos o con devolución dentro de la ventana,
// ordenados por fecha esperada y clasificados vencido / por_vencer / en_tiempo.
func (uc *DashboardUseCase) ExpiringAssets(ctx context.Context) ([]dto.ExpiringAssetDTO, error) {
	today := entity.DateOnly(time.Now())
	rows, err := uc.repo.ListExpiring(ctx, today.AddDate(0, 0, uc.cfg.LookaheadDays))
	if err != nil {
		return nil, fmt.Errorf("dashboard: bienes por vencer: %w", err)
	}
	out := make([]dto.ExpiringAssetDTO, 0, len(rows))
	for _, r := range rows {
		status, days := entity.ClassifyReturn(r.ExpectedReturnDate, today, uc.cfg.DueSoonDays)
		out = append(out, dto.ExpiringAssetDTO{
			ID:                 r.AssetID,
			Name:               r.Name,
			SerialNumber:       r.SerialNumber,
			InventoryNumber:    r.InventoryNumber,
			Brand:              r.Brand,
			Model:              r.Model,
			Location:           r.Location,
			AssignedTo:         r.AssignedTo,
			AssignmentDate:     r.AssignmentDate,
			ExpectedReturnDate: r.ExpectedReturnDate.Format(dto.DateLayout),
			ReturnStatus:       status,
			DaysRemaining:      days,
		})
	}
	return out, nil
}

// Invalidate descarta las estadísticas en caché. Lo invocan las escrituras del flujo.
func (uc *DashboardUseCase) Invalidate() {
	if uc.cache != nil {
		uc.cache.Invalidate()
	}
}
