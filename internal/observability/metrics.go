// Package observability agrupa métricas Prometheus y trazas OpenTelemetry del servicio.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkflowTransitions cuenta transiciones del flujo de préstamo por operación y resultado.
	WorkflowTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuentadante_workflow_transitions_total",
		Help: "Total de transiciones del flujo de solicitudes por operación y resultado",
	}, []string{"operation", "outcome"})

	// DashboardCacheLookups cuenta aciertos y fallos de la caché del tablero.
	DashboardCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuentadante_dashboard_cache_lookups_total",
		Help: "Consultas a la caché de estadísticas del tablero",
	}, []string{"result"})

	// LoginAttempts cuenta intentos de login por resultado.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuentadante_login_attempts_total",
		Help: "Intentos de inicio de sesión por resultado",
	}, []string{"outcome"})
)

// Outcome traduce un error en la etiqueta de resultado de las métricas.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
