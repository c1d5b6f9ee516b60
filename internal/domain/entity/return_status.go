package entity

import (
	"math"
	"time"
)

// Clasificación de devoluciones próximas.
const (
	ReturnStatusOverdue = "vencido"
	ReturnStatusDueSoon = "por_vencer"
	ReturnStatusOnTime  = "en_tiempo"
)

// ClassifyReturn clasifica una fecha esperada de devolución respecto a today.
// Retorna el estado y los días restantes (negativos si está vencido).
func ClassifyReturn(expected, today time.Time, dueSoonDays int) (string, int) {
	e := civilDay(expected)
	t := civilDay(today)
	days := int(math.Round(e.Sub(t).Hours() / 24))
	switch {
	case e.Before(t):
		return ReturnStatusOverdue, days
	case days <= dueSoonDays:
		return ReturnStatusDueSoon, days
	default:
		return ReturnStatusOnTime, days
	}
}

// civilDay lleva t a la medianoche UTC de su fecha calendario, para comparar
// columnas DATE con relojes en zona local.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBefore indica si la fecha calendario de a es anterior a la de b, sin importar la zona.
func DayBefore(a, b time.Time) bool {
	return civilDay(a).Before(civilDay(b))
}
