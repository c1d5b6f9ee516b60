// Package cache implementa cachés en memoria del proceso sobre go-cache.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/cuentadante-api/internal/application/analytics"
	"github.com/jhoicas/cuentadante-api/internal/application/dto"
)

var _ analytics.StatsCache = (*StatsCache)(nil)

const statsKey = "dashboard:stats"

// StatsCache guarda las estadísticas del tablero con expiración.
type StatsCache struct {
	c *gocache.Cache
}

// NewStatsCache crea la caché. ttl <= 0 deja las entradas hasta la próxima invalidación.
func NewStatsCache(ttl time.Duration) *StatsCache {
	exp := ttl
	if exp <= 0 {
		exp = gocache.NoExpiration
	}
	return &StatsCache{c: gocache.New(exp, 2*time.Minute)}
}

// GetStats retorna una copia de las estadísticas vigentes.
func (s *StatsCache) GetStats() (*dto.DashboardStatsDTO, bool) {
	v, ok := s.c.Get(statsKey)
	if !ok {
		return nil, false
	}
	stats, ok := v.(dto.DashboardStatsDTO)
	if !ok {
		return nil, false
	}
	return &stats, true
}

// SetStats guarda una copia para que el llamador no mute la entrada.
func (s *StatsCache) SetStats(stats *dto.DashboardStatsDTO) {
	if stats == nil {
		return
	}
	s.c.SetDefault(statsKey, *stats)
}

// Invalidate elimina las estadísticas guardadas.
func (s *StatsCache) Invalidate() {
	s.c.Delete(statsKey)
}
