package dto

import (
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
)

// ToAssetResponse mapea un bien a su salida HTTP.
func ToAssetResponse(a *entity.Asset) AssetResponse {
	out := AssetResponse{
		ID:              a.ID,
		Name:            a.Name,
		Description:     a.Description,
		SerialNumber:    a.SerialNumber,
		InventoryNumber: a.InventoryNumber,
		Brand:           a.Brand,
		Model:           a.Model,
		Category:        a.Category,
		Condition:       a.Condition,
		Location:        a.Location,
		PurchaseDate:    FormatDate(a.PurchaseDate),
		WarrantyExpiry:  FormatDate(a.WarrantyExpiry),
		PurchasePrice:   a.PurchasePrice,
		CurrentValue:    a.CurrentValue,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if asg := a.Assignment; asg != nil {
		assignedTo := asg.AssignedTo
		assignedAt := asg.AssignmentDate
		out.AssignedTo = &assignedTo
		out.AssignmentDate = &assignedAt
		out.ExpectedReturnDate = FormatDate(&asg.ExpectedReturnDate)
		out.CurrentRequestID = asg.RequestID
	}
	return out
}

// ToRequestResponse mapea una solicitud a su salida HTTP (sin datos del bien).
func ToRequestResponse(r *entity.Request) RequestResponse {
	return RequestResponse{
		ID:                r.ID,
		RequestDate:       r.RequestDate,
		ApplicantName:     r.ApplicantName,
		ApplicantPosition: r.ApplicantPosition,
		AssetID:           r.AssetID,
		Reason:            r.Reason,
		Priority:          r.Priority,
		Status:            r.Status,
		StatusWorkflow: StatusWorkflowDTO{
			Cuentadante:   r.Approvals.Cuentadante,
			Gerente:       r.Approvals.Gerente,
			Administrador: r.Approvals.Administrador,
			Celador:       r.Approvals.Celador,
		},
		FinalStatus:        r.Status,
		ApprovedBy:         r.ApprovedBy,
		ApprovalDate:       r.ApprovalDate,
		RejectedBy:         r.RejectedBy,
		RejectedByRole:     r.RejectedByRole,
		RejectionReason:    r.RejectionReason,
		RejectionDate:      r.RejectionDate,
		ExpectedReturnDate: FormatDate(r.ExpectedReturnDate),
		ActualReturnDate:   FormatDate(r.ActualReturnDate),
		Notes:              r.Notes,
		ActionDate:         r.ActionDate,
	}
}

// ToRequestListItem mapea una solicitud con su bien.
func ToRequestListItem(r repository.RequestWithAsset) RequestResponse {
	out := ToRequestResponse(&r.Request)
	out.AssetName = r.Asset.Name
	out.AssetSerial = r.Asset.SerialNumber
	out.AssetInventory = r.Asset.InventoryNumber
	out.AssetBrand = r.Asset.Brand
	out.AssetModel = r.Asset.Model
	out.AssetCategory = r.Asset.Category
	out.AssetStatus = r.Asset.Status
	out.AssetLocation = r.Asset.Location
	out.AssetCondition = r.Asset.Condition
	return out
}

// ToMovementResponse mapea un movimiento con su bien.
func ToMovementResponse(m repository.MovementWithAsset) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		AssetID:        m.AssetID,
		RequestID:      m.RequestID,
		MovementType:   m.Type,
		FromPerson:     m.FromPerson,
		ToPerson:       m.ToPerson,
		MovementDate:   m.MovementDate,
		Reason:         m.Reason,
		AuthorizedBy:   m.AuthorizedBy,
		Notes:          m.Notes,
		AssetName:      m.Asset.Name,
		AssetSerial:    m.Asset.SerialNumber,
		AssetInventory: m.Asset.InventoryNumber,
		AssetBrand:     m.Asset.Brand,
		AssetModel:     m.Asset.Model,
	}
}

// ToUserResponse mapea un usuario sin exponer su hash.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
