package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/nexsys-labs/billing/internal/client/api"
	"github.com/nexsys-labs/billing/internal/logging"
)

const pingTimeout = 3 * time.Second

// Monitor polls the server and tracks whether it is reachable. Every
// offline-to-online transition is published on the Restored channel, which
// the reconciler uses as its trigger to drain the queue.
//
// The monitor starts in the offline state, so the first successful ping also
// fires the signal; a client that boots with a backlog drains it right away.
type Monitor struct {
	client   api.Client
	logger   logging.Logger
	interval time.Duration

	mu       sync.Mutex
	online   bool
	restored chan struct{}
}

func NewMonitor(c api.Client, interval time.Duration, l logging.Logger) *Monitor {
	return &Monitor{
		client:   c,
		logger:   l.With("module", "connectivity"),
		interval: interval,
		restored: make(chan struct{}, 1),
	}
}

// Restored delivers one notification per offline-to-online transition. The
// channel is buffered; a signal that arrives while a drain is already in
// flight coalesces with the pending one.
func (m *Monitor) Restored() <-chan struct{} {
	return m.restored
}

// Online reports the state observed by the most recent probe.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Run probes the server every interval until ctx is cancelled. The first
// probe happens immediately.
func (m *Monitor) Run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := m.client.Ping(pingCtx)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		if m.online {
			m.online = false
			m.logger.Warn(ctx, "server unreachable, switching to offline mode", "error", err)
		}
		return
	}

	if !m.online {
		m.online = true
		m.logger.Info(ctx, "server reachable, switching to online mode")
		select {
		case m.restored <- struct{}{}:
		default:
		}
	}
}
