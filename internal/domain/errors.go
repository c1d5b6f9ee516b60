package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrAssetNotFound      = errors.New("Bien no encontrado")
	ErrRequestNotFound    = errors.New("Solicitud no encontrada")
	ErrMovementNotFound   = errors.New("movimiento no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("Credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrAssetNotAvailable  = errors.New("El bien ya no está disponible")
	ErrAssetNotAssigned   = errors.New("El bien no está asignado")
	ErrAlreadyProcessed   = errors.New("La solicitud ya ha sido procesada")
	ErrRoleAlreadyDecided = errors.New("el rol ya registró su decisión sobre la solicitud")
)

// RuleError es un error de regla de negocio con mensaje propio para el cliente.
// errors.Is sigue reconociendo el sentinel de Kind.
type RuleError struct {
	Kind error
	Msg  string
}

// NewRuleError crea un RuleError.
func NewRuleError(kind error, msg string) *RuleError {
	return &RuleError{Kind: kind, Msg: msg}
}

func (e *RuleError) Error() string {
	if e.Msg == "" && e.Kind != nil {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *RuleError) Unwrap() error { return e.Kind }

// Invalid es un atajo para errores de validación de entrada.
func Invalid(msg string) error {
	return NewRuleError(ErrInvalidInput, msg)
}

// IsValidation indica si el error corresponde a una violación de regla (HTTP 400).
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrAssetNotAvailable) ||
		errors.Is(err, ErrAssetNotAssigned) ||
		errors.Is(err, ErrAlreadyProcessed) ||
		errors.Is(err, ErrRoleAlreadyDecided)
}

// IsNotFound indica si el error corresponde a un recurso inexistente (HTTP 404).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAssetNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrMovementNotFound)
}
