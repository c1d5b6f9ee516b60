package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementWithAssetSelect = `
	SELECT m.id, m.asset_id, m.request_id, m.movement_type, m.from_person, m.to_person,
		m.movement_date, m.reason, m.authorized_by, m.notes,
		a.name, a.serial_number, a.inventory_number, a.brand, a.model, a.category,
		a.status, a.location, a.condition
	FROM asset_movements m
	JOIN assets a ON a.id = m.asset_id`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador (pool o tx).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y completa ID y fecha.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO asset_movements (asset_id, request_id, movement_type, from_person, to_person,
			movement_date, reason, authorized_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, movement_date`
	err := r.q.QueryRow(ctx, query,
		m.AssetID, m.RequestID, m.Type, nullString(m.FromPerson), nullString(m.ToPerson),
		m.MovementDate, nullString(m.Reason), nullString(m.AuthorizedBy), nullString(m.Notes),
	).Scan(&m.ID, &m.MovementDate)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con los datos del bien. Retorna (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*repository.MovementWithAsset, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, movementWithAssetSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List retorna los movimientos filtrados, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]repository.MovementWithAsset, error) {
	var (
		conds []string
		args  []any
	)
	if filter.AssetID > 0 {
		args = append(args, filter.AssetID)
		conds = append(conds, fmt.Sprintf("m.asset_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("m.movement_type = $%d", len(args)))
	}
	query := movementWithAssetSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY m.movement_date DESC, m.id DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []repository.MovementWithAsset
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*repository.MovementWithAsset, error) {
	var (
		m                                     repository.MovementWithAsset
		from, to, reason, authorizedBy, notes *string
	)
	err := row.Scan(
		&m.ID, &m.AssetID, &m.RequestID, &m.Type, &from, &to, &m.MovementDate, &reason,
		&authorizedBy, &notes,
		&m.Asset.Name, &m.Asset.SerialNumber, &m.Asset.InventoryNumber, &m.Asset.Brand,
		&m.Asset.Model, &m.Asset.Category, &m.Asset.Status, &m.Asset.Location, &m.Asset.Condition,
	)
	if err != nil {
		return nil, err
	}
	m.FromPerson = derefString(from)
	m.ToPerson = derefString(to)
	m.Reason = derefString(reason)
	m.AuthorizedBy = derefString(authorizedBy)
	m.Notes = derefString(notes)
	return &m, nil
}
