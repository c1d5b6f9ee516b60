package dto

import "time"

// DateLayout formato de fechas sin hora (columnas DATE).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta de confirmación de operaciones de escritura.
type MessageResponse struct {
	Message string `json:"message"`
}

// FormatDate formatea una fecha opcional como YYYY-MM-DD.
func FormatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate interpreta YYYY-MM-DD o RFC3339. Cadena vacía retorna (nil, nil).
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
