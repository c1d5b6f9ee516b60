package entity

import "time"

// Estados de una solicitud y de cada decisión por rol.
const (
	RequestStatusPending  = "Pendiente"
	RequestStatusApproved = "Aprobado"
	RequestStatusRejected = "Rechazado"
)

// Prioridades de una solicitud.
const (
	PriorityLow       = "Leve"
	PriorityMedium    = "Media"
	PriorityImportant = "Importante"
	PriorityHigh      = "Alta"
)

// IsValidPriority indica si p es una prioridad conocida.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityImportant, PriorityHigh:
		return true
	}
	return false
}

// Request representa una solicitud de préstamo de un bien.
type Request struct {
	ID                 int64
	RequestDate        time.Time
	ApplicantName      string
	ApplicantPosition  string
	AssetID            int64
	Reason             string
	Priority           string
	Status             string
	Approvals          RoleApprovals
	ApprovedBy         string
	ApprovalDate       *time.Time
	RejectedBy         string
	RejectedByRole     string
	RejectionReason    string
	RejectionDate      *time.Time
	ExpectedReturnDate *time.Time
	ActualReturnDate   *time.Time
	Notes              string
	ActionDate         *time.Time
}

// NewRequest crea una solicitud pendiente con todas las decisiones por rol en Pendiente.
func NewRequest(assetID int64, applicant, position, reason, priority string, at time.Time) *Request {
	if priority == "" {
		priority = PriorityMedium
	}
	return &Request{
		RequestDate:       at,
		ApplicantName:     applicant,
		ApplicantPosition: position,
		AssetID:           assetID,
		Reason:            reason,
		Priority:          priority,
		Status:            RequestStatusPending,
		Approvals:         NewRoleApprovals(),
	}
}

// IsTerminal indica si la solicitud ya fue decidida.
func (r *Request) IsTerminal() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusRejected
}

// Approve aprueba la solicitud en el flujo de aprobador único.
func (r *Request) Approve(approvedBy, notes string, at time.Time) {
	r.Status = RequestStatusApproved
	r.ApprovedBy = approvedBy
	r.ApprovalDate = &at
	r.ActionDate = &at
	if notes != "" {
		r.Notes = notes
	}
}

// Reject rechaza la solicitud en el flujo de aprobador único.
func (r *Request) Reject(rejectedBy, reason string, at time.Time) {
	r.Status = RequestStatusRejected
	r.RejectedBy = rejectedBy
	r.RejectionReason = reason
	r.RejectionDate = &at
	r.ActionDate = &at
}

// DecideAsRole registra la decisión de un rol y recalcula el estado final.
// Retorna el estado final resultante.
func (r *Request) DecideAsRole(role Role, decision, actor, reason string, at time.Time) string {
	r.Approvals.Set(role, decision)
	r.Status = r.Approvals.FinalStatus()
	r.ActionDate = &at
	switch r.Status {
	case RequestStatusApproved:
		r.ApprovedBy = actor
		r.ApprovalDate = &at
	case RequestStatusRejected:
		r.RejectedBy = actor
		r.RejectedByRole = string(role)
		r.RejectionReason = reason
		r.RejectionDate = &at
	}
	return r.Status
}

// MarkReturned registra la fecha efectiva de devolución.
func (r *Request) MarkReturned(at time.Time) {
	d := DateOnly(at)
	r.ActualReturnDate = &d
}

// DateOnly trunca t a medianoche en su propia zona horaria.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
