package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `
	id, name, description, serial_number, inventory_number, brand, model, category,
	condition, location, purchase_date, warranty_expiry, purchase_price, current_value,
	status, assigned_to, assignment_date, expected_return_date, current_request_id,
	created_at, updated_at`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador (pool o tx).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create registra un bien nuevo y completa ID y fechas.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	query := `
		INSERT INTO assets (name, description, serial_number, inventory_number, brand, model,
			category, condition, location, purchase_date, warranty_expiry, purchase_price,
			current_value, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		a.Name, a.Description, a.SerialNumber, a.InventoryNumber, a.Brand, a.Model,
		a.Category, a.Condition, a.Location, dateOrNil(a.PurchaseDate), dateOrNil(a.WarrantyExpiry),
		a.PurchasePrice, a.CurrentValue, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de serie o de inventario ya registrado", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un bien por ID. Retorna (nil, nil) si no existe.
func (r *AssetRepo) GetByID(ctx context.Context, id int64) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene el bien y bloquea la fila (SELECT FOR UPDATE). Sólo tiene efecto dentro de una tx.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset for update: %w", err)
	}
	return a, nil
}

// List retorna todos los bienes ordenados por nombre.
func (r *AssetRepo) List(ctx context.Context) ([]*entity.Asset, error) {
	rows, err := r.q.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateCustody persiste estado y custodia del bien.
func (r *AssetRepo) UpdateCustody(ctx context.Context, a *entity.Asset) error {
	var (
		assignedTo *string
		assignedAt *time.Time
		expected   *time.Time
		requestID  *int64
	)
	if a.Assignment != nil {
		assignedTo = &a.Assignment.AssignedTo
		assignedAt = &a.Assignment.AssignmentDate
		expected = &a.Assignment.ExpectedReturnDate
		requestID = a.Assignment.RequestID
	}
	query := `
		UPDATE assets
		SET status = $2, assigned_to = $3, assignment_date = $4, expected_return_date = $5,
			current_request_id = $6, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, a.ID, a.Status, assignedTo, assignedAt, expected, requestID)
	if err != nil {
		return fmt.Errorf("update asset custody: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var (
		a          entity.Asset
		assignedTo *string
		assignedAt *time.Time
		expected   *time.Time
		requestID  *int64
	)
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.SerialNumber, &a.InventoryNumber, &a.Brand, &a.Model,
		&a.Category, &a.Condition, &a.Location, &a.PurchaseDate, &a.WarrantyExpiry,
		&a.PurchasePrice, &a.CurrentValue, &a.Status, &assignedTo, &assignedAt, &expected,
		&requestID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignedTo != nil {
		asg := &entity.Assignment{AssignedTo: *assignedTo, RequestID: requestID}
		if assignedAt != nil {
			asg.AssignmentDate = *assignedAt
		}
		if expected != nil {
			asg.ExpectedReturnDate = *expected
		}
		a.Assignment = asg
	}
	return &a, nil
}
