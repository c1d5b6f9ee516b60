package dto

import "time"

// CreateRequestRequest body para POST /api/requests.
type CreateRequestRequest struct {
	AssetID            *int64 `json:"asset_id"`
	ApplicantName      string `json:"applicant_name"`
	ApplicantPosition  string `json:"applicant_position,omitempty"`
	Reason             string `json:"reason"`
	Priority           string `json:"priority,omitempty"`             // Leve | Media | Importante | Alta
	ExpectedReturnDate string `json:"expected_return_date,omitempty"` // YYYY-MM-DD
	Notes              string `json:"notes,omitempty"`
}

// DecisionRequest body para PUT /api/requests/:id/approve y /reject.
// Con Role se decide en el flujo por roles; sin Role en el de aprobador único.
type DecisionRequest struct {
	Role            string `json:"role,omitempty"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	RejectedBy      string `json:"rejected_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	Reason          string `json:"reason,omitempty"` // alias de rejection_reason en el flujo por roles
	Notes           string `json:"notes,omitempty"`
}

// StatusWorkflowDTO decisiones por rol.
type StatusWorkflowDTO struct {
	Cuentadante   string `json:"cuentadante"`
	Gerente       string `json:"gerente"`
	Administrador string `json:"administrador"`
	Celador       string `json:"celador"`
}

// RequestResponse salida de una solicitud. Los campos asset_* vienen sólo en listados.
type RequestResponse struct {
	ID                 int64             `json:"id"`
	RequestDate        time.Time         `json:"request_date"`
	ApplicantName      string            `json:"applicant_name"`
	ApplicantPosition  string            `json:"applicant_position"`
	AssetID            int64             `json:"asset_id"`
	Reason             string            `json:"reason"`
	Priority           string            `json:"priority"`
	Status             string            `json:"status"`
	StatusWorkflow     StatusWorkflowDTO `json:"status_workflow"`
	FinalStatus        string            `json:"final_status"`
	ApprovedBy         string            `json:"approved_by,omitempty"`
	ApprovalDate       *time.Time        `json:"approval_date"`
	RejectedBy         string            `json:"rejected_by,omitempty"`
	RejectedByRole     string            `json:"rejected_by_role,omitempty"`
	RejectionReason    string            `json:"rejection_reason,omitempty"`
	RejectionDate      *time.Time        `json:"rejection_date"`
	ExpectedReturnDate *string           `json:"expected_return_date"`
	ActualReturnDate   *string           `json:"actual_return_date"`
	Notes              string            `json:"notes,omitempty"`
	ActionDate         *time.Time        `json:"action_date"`

	AssetName      string `json:"asset_name,omitempty"`
	AssetSerial    string `json:"asset_serial,omitempty"`
	AssetInventory string `json:"asset_inventory,omitempty"`
	AssetBrand     string `json:"asset_brand,omitempty"`
	AssetModel     string `json:"asset_model,omitempty"`
	AssetCategory  string `json:"asset_category,omitempty"`
	AssetStatus    string `json:"asset_status,omitempty"`
	AssetLocation  string `json:"asset_location,omitempty"`
	AssetCondition string `json:"asset_condition,omitempty"`
}

// CreateRequestResponse respuesta de POST /api/requests.
type CreateRequestResponse struct {
	Message string          `json:"message"`
	Request RequestResponse `json:"request"`
}

// DecisionResponse respuesta de aprobación o rechazo.
type DecisionResponse struct {
	Message string          `json:"message"`
	Request RequestResponse `json:"request"`
}
