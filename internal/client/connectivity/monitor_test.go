package connectivity

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsys-labs/billing/internal/client/api"
	"github.com/nexsys-labs/billing/internal/client/models"
	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/logging"
)

type flakyPinger struct {
	mu   sync.Mutex
	down bool
}

func (f *flakyPinger) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *flakyPinger) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return common.ErrServerUnavailable
	}
	return nil
}

func (f *flakyPinger) CreateInvoice(ctx context.Context, draft *models.Draft) (*api.ServerInvoice, error) {
	return nil, common.ErrServerUnavailable
}

func (f *flakyPinger) ListInvoices(ctx context.Context) ([]*api.ServerInvoice, error) {
	return nil, common.ErrServerUnavailable
}

func (f *flakyPinger) GetInvoice(ctx context.Context, number int64) (*api.ServerInvoice, error) {
	return nil, common.ErrServerUnavailable
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMonitor_SignalsOnRecovery(t *testing.T) {
	p := &flakyPinger{down: true}
	m := NewMonitor(p, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	// Down from the start: no signal, state stays offline.
	select {
	case <-m.Restored():
		t.Fatal("got restored signal while server is down")
	case <-time.After(50 * time.Millisecond):
	}
	assert.False(t, m.Online())

	p.setDown(false)

	select {
	case <-m.Restored():
	case <-time.After(time.Second):
		t.Fatal("no restored signal after recovery")
	}
	require.True(t, m.Online())

	// Staying online does not re-fire the signal.
	select {
	case <-m.Restored():
		t.Fatal("duplicate restored signal without an outage in between")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_FirstProbeOnlineFiresImmediately(t *testing.T) {
	p := &flakyPinger{}
	m := NewMonitor(p, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	// The startup probe alone must produce the signal so a backlog left from
	// a previous session drains without waiting a full interval.
	select {
	case <-m.Restored():
	case <-time.After(time.Second):
		t.Fatal("no restored signal from the startup probe")
	}
}

func TestMonitor_SignalCoalesces(t *testing.T) {
	p := &flakyPinger{}
	m := NewMonitor(p, 5*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	<-m.Restored()

	// Two outages while nobody reads: at most one signal is buffered.
	for i := 0; i < 2; i++ {
		p.setDown(true)
		require.Eventually(t, func() bool { return !m.Online() }, time.Second, time.Millisecond)
		p.setDown(false)
		require.Eventually(t, m.Online, time.Second, time.Millisecond)
	}

	<-m.Restored()
	select {
	case <-m.Restored():
		t.Fatal("more than one buffered signal")
	case <-time.After(50 * time.Millisecond):
	}
}
