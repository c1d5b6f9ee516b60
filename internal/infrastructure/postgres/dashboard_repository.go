package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountAssets cuenta bienes por estado y agrega el valor actual (current_value).
// Usa COALESCE para devolver cero si no hay bienes valorados.
func (r *DashboardRepo) CountAssets(ctx context.Context) (repository.AssetCounts, error) {
	const query = `
	SELECT
	    COUNT(*)                                          AS total,
	    COUNT(*) FILTER (WHERE status = 'Available')      AS available,
	    COUNT(*) FILTER (WHERE status = 'Assigned')       AS assigned,
	    COUNT(*) FILTER (WHERE status = 'Maintenance')    AS maintenance,
	    COUNT(*) FILTER (WHERE status = 'Retired')        AS retired,
	    COALESCE(ROUND(AVG(current_value), 2), 0)         AS avg_value,
	    COALESCE(SUM(current_value), 0)                   AS total_value
	FROM assets`

	var c repository.AssetCounts
	err := r.q.QueryRow(ctx, query).Scan(
		&c.Total, &c.Available, &c.Assigned, &c.Maintenance, &c.Retired, &c.AvgValue, &c.TotalValue,
	)
	if err != nil {
		return repository.AssetCounts{}, fmt.Errorf("dashboard.CountAssets: %w", err)
	}
	return c, nil
}

// CountRequests cuenta solicitudes por estado.
func (r *DashboardRepo) CountRequests(ctx context.Context) (repository.RequestCounts, error) {
	const query = `
	SELECT
	    COUNT(*)                                          AS total,
	    COUNT(*) FILTER (WHERE status = 'Pendiente')      AS pending,
	    COUNT(*) FILTER (WHERE status = 'Aprobado')       AS approved,
	    COUNT(*) FILTER (WHERE status = 'Rechazado')      AS rejected
	FROM requests`

	var c repository.RequestCounts
	if err := r.q.QueryRow(ctx, query).Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected); err != nil {
		return repository.RequestCounts{}, fmt.Errorf("dashboard.CountRequests: %w", err)
	}
	return c, nil
}

// CountMovements cuenta el total de movimientos registrados.
func (r *DashboardRepo) CountMovements(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM asset_movements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountMovements: %w", err)
	}
	return n, nil
}

// ListExpiring retorna los bienes asignados con devolución esperada hasta until (incluye vencidos).
func (r *DashboardRepo) ListExpiring(ctx context.Context, until time.Time) ([]repository.ExpiringAssetResult, error) {
	const query = `
	SELECT id, name, serial_number, inventory_number, brand, model, location,
	       assigned_to, assignment_date, expected_return_date
	FROM assets
	WHERE status = $1
	  AND expected_return_date IS NOT NULL
	  AND expected_return_date <= $2::date
	ORDER BY expected_return_date ASC, id ASC`

	rows, err := r.q.Query(ctx, query, entity.AssetStatusAssigned, until)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ListExpiring: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpiringAssetResult
	for rows.Next() {
		var row repository.ExpiringAssetResult
		if err := rows.Scan(
			&row.AssetID,
			&row.Name,
			&row.SerialNumber,
			&row.InventoryNumber,
			&row.Brand,
			&row.Model,
			&row.Location,
			&row.AssignedTo,
			&row.AssignmentDate,
			&row.ExpectedReturnDate,
		); err != nil {
			return nil, fmt.Errorf("dashboard.ListExpiring scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
