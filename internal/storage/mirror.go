package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"tradebook/internal/events"
)

// Mirror keeps the remote store converged with the local ledger. It runs as
// a scheduled job and can also be triggered asynchronously after mutations;
// triggers are coalesced through a single-slot channel, so a burst of edits
// results in one push.
type Mirror struct {
	local   Store
	remote  Store
	events  *events.Manager
	log     zerolog.Logger
	pending chan struct{}
	timeout time.Duration
}

// NewMirror creates the mirror and starts its trigger listener. remote may
// be nil, in which case every method is a no-op.
func NewMirror(local, remote Store, ev *events.Manager, log zerolog.Logger) *Mirror {
	m := &Mirror{
		local:   local,
		remote:  remote,
		events:  ev,
		log:     log.With().Str("job", "remote_mirror").Logger(),
		pending: make(chan struct{}, 1),
		timeout: 30 * time.Second,
	}
	if remote != nil {
		go m.listen()
	}
	return m
}

// Name implements the scheduler Job interface.
func (m *Mirror) Name() string { return "remote_mirror" }

// Run pushes the current local snapshot to the remote store.
func (m *Mirror) Run() error {
	if m.remote == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	return m.push(ctx)
}

// TriggerAsync schedules a push without blocking the caller. Duplicate
// triggers while one is pending collapse into a single push.
func (m *Mirror) TriggerAsync() {
	if m.remote == nil {
		return
	}
	select {
	case m.pending <- struct{}{}:
	default:
	}
}

func (m *Mirror) listen() {
	for range m.pending {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		if err := m.push(ctx); err != nil {
			m.log.Warn().Err(err).Msg("Async remote push failed")
		}
		cancel()
	}
}

func (m *Mirror) push(ctx context.Context) error {
	m.events.Emit(events.RemoteSyncStart, "storage", nil)

	p, err := m.local.Load(ctx)
	if err != nil {
		m.events.EmitError("storage", err, map[string]interface{}{"stage": "load"})
		return err
	}

	if err := m.remote.Save(ctx, p); err != nil {
		m.events.Emit(events.RemoteSyncFailed, "storage", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	m.events.Emit(events.RemoteSyncComplete, "storage", map[string]interface{}{
		"trades":     len(p.Trades),
		"cash_flows": len(p.CashFlows),
	})
	return nil
}
