package postgres

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/fiado-ledger/internal/application/ports"
)

var _ ports.ConnectivityChecker = (*HealthMonitor)(nil)

// HealthMonitor mantiene la señal de conectividad con la BD haciendo ping
// periódico al pool. Las operaciones mutadoras consultan Connected() y
// rechazan de inmediato cuando está offline.
type HealthMonitor struct {
	pool      *pgxpool.Pool
	interval  time.Duration
	connected atomic.Bool
	stop      chan struct{}
}

// NewHealthMonitor construye el monitor; arranca como conectado (el pool ya
// hizo ping al crearse).
func NewHealthMonitor(pool *pgxpool.Pool, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	m := &HealthMonitor{
		pool:     pool,
		interval: interval,
		stop:     make(chan struct{}),
	}
	m.connected.Store(true)
	return m
}

// Start lanza el ping periódico en background.
func (m *HealthMonitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
				err := m.pool.Ping(pingCtx)
				cancel()
				m.connected.Store(err == nil)
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop detiene el monitor.
func (m *HealthMonitor) Stop() {
	close(m.stop)
}

// Connected devuelve el último estado conocido de la conexión.
func (m *HealthMonitor) Connected() bool {
	return m.connected.Load()
}
