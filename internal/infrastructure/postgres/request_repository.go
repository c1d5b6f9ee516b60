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

var _ repository.RequestRepository = (*RequestRepo)(nil)

const requestColumns = `
	r.id, r.request_date, r.applicant_name, r.applicant_position, r.asset_id, r.reason,
	r.priority, r.status, r.cuentadante_status, r.gerente_status, r.administrador_status,
	r.celador_status, r.approved_by, r.approval_date, r.rejected_by, r.rejected_by_role,
	r.rejection_reason, r.rejection_date, r.expected_return_date, r.actual_return_date,
	r.notes, r.action_date`

// RequestRepo implementación del puerto RequestRepository sobre PostgreSQL.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador (pool o tx).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// Create persiste una solicitud nueva y completa su ID.
func (r *RequestRepo) Create(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO requests (request_date, applicant_name, applicant_position, asset_id, reason,
			priority, status, cuentadante_status, gerente_status, administrador_status, celador_status,
			expected_return_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		req.RequestDate, req.ApplicantName, req.ApplicantPosition, req.AssetID, req.Reason,
		req.Priority, req.Status, req.Approvals.Cuentadante, req.Approvals.Gerente,
		req.Approvals.Administrador, req.Approvals.Celador,
		dateOrNil(req.ExpectedReturnDate), nullString(req.Notes),
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Retorna (nil, nil) si no existe.
func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*entity.Request, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests r WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return req, nil
}

// GetForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE).
func (r *RequestRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Request, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests r WHERE r.id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request for update: %w", err)
	}
	return req, nil
}

// List retorna todas las solicitudes con los datos del bien, más recientes primero.
func (r *RequestRepo) List(ctx context.Context) ([]repository.RequestWithAsset, error) {
	query := `
		SELECT ` + requestColumns + `,
			a.name, a.serial_number, a.inventory_number, a.brand, a.model, a.category,
			a.status, a.location, a.condition
		FROM requests r
		JOIN assets a ON a.id = r.asset_id
		ORDER BY r.request_date DESC, r.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var list []repository.RequestWithAsset
	for rows.Next() {
		var a repository.AssetSummary
		req, err := scanRequestWith(rows,
			&a.Name, &a.SerialNumber, &a.InventoryNumber, &a.Brand, &a.Model, &a.Category,
			&a.Status, &a.Location, &a.Condition,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		list = append(list, repository.RequestWithAsset{Request: *req, Asset: a})
	}
	return list, rows.Err()
}

// UpdateDecision persiste la decisión tomada sobre la solicitud.
func (r *RequestRepo) UpdateDecision(ctx context.Context, req *entity.Request) error {
	query := `
		UPDATE requests
		SET status = $2, cuentadante_status = $3, gerente_status = $4, administrador_status = $5,
			celador_status = $6, approved_by = $7, approval_date = $8, rejected_by = $9,
			rejected_by_role = $10, rejection_reason = $11, rejection_date = $12, notes = $13,
			action_date = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		req.ID, req.Status, req.Approvals.Cuentadante, req.Approvals.Gerente,
		req.Approvals.Administrador, req.Approvals.Celador,
		nullString(req.ApprovedBy), req.ApprovalDate, nullString(req.RejectedBy),
		nullString(req.RejectedByRole), nullString(req.RejectionReason), req.RejectionDate,
		nullString(req.Notes), req.ActionDate,
	)
	if err != nil {
		return fmt.Errorf("update request decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// SetActualReturnDate marca la devolución efectiva.
func (r *RequestRepo) SetActualReturnDate(ctx context.Context, id int64, date time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE requests SET actual_return_date = $2 WHERE id = $1`, id, date)
	if err != nil {
		return fmt.Errorf("set actual return date: %w", err)
	}
	return nil
}

// FindOpenApprovedByAsset retorna la solicitud aprobada más reciente del bien sin devolución.
func (r *RequestRepo) FindOpenApprovedByAsset(ctx context.Context, assetID int64) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + `
		FROM requests r
		WHERE r.asset_id = $1 AND r.status = $2 AND r.actual_return_date IS NULL
		ORDER BY r.approval_date DESC NULLS LAST, r.id DESC
		LIMIT 1`
	req, err := scanRequest(r.q.QueryRow(ctx, query, assetID, entity.RequestStatusApproved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open request by asset: %w", err)
	}
	return req, nil
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	return scanRequestWith(row)
}

// scanRequestWith escanea las columnas de requestColumns seguidas de extra.
func scanRequestWith(row pgx.Row, extra ...any) (*entity.Request, error) {
	var (
		req                                           entity.Request
		approvedBy, rejectedBy, rejectedByRole, notes *string
		reason                                        *string
	)
	dest := []any{
		&req.ID, &req.RequestDate, &req.ApplicantName, &req.ApplicantPosition, &req.AssetID,
		&req.Reason, &req.Priority, &req.Status, &req.Approvals.Cuentadante, &req.Approvals.Gerente,
		&req.Approvals.Administrador, &req.Approvals.Celador, &approvedBy, &req.ApprovalDate,
		&rejectedBy, &rejectedByRole, &reason, &req.RejectionDate, &req.ExpectedReturnDate,
		&req.ActualReturnDate, &notes, &req.ActionDate,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	req.ApprovedBy = derefString(approvedBy)
	req.RejectedBy = derefString(rejectedBy)
	req.RejectedByRole = derefString(rejectedByRole)
	req.RejectionReason = derefString(reason)
	req.Notes = derefString(notes)
	return &req, nil
}
