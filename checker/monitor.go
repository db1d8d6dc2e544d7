package checker

import (
	"context"
	"time"

	"github.com/solbound/delcheck/pkg/clock"
)

// DefaultMonitorInterval is how often the monitor re-checks its accounts.
const DefaultMonitorInterval = 30 * time.Second

// StatusResolver resolves a batch of accounts with per-item isolation
type StatusResolver interface {
	ResolveMany(ctx context.Context, accounts []string) []DelegationResult
}

// Clock abstracts time for production and testing
// ------------------------------------------------
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

// Event represents a monitor lifecycle event
// ------------------------------------------
type Event any

type MonitorStarted struct {
	Accounts []string
	Interval time.Duration
}

type CheckCompleted struct {
	Results []DelegationResult
}

type StatusChanged struct {
	Account string
	From    DelegationStatus
	To      DelegationStatus
}

type MonitorShutdown struct {
	Reason error // Why shutdown occurred (ctx.Err())
}

// MonitorOption configures the Monitor
// ------------------------------------
type MonitorOption func(*Monitor)

// WithClock injects a custom Clock (e.g., for testing)
func WithClock(c Clock) MonitorOption {
	return func(m *Monitor) { m.clock = c }
}

// WithPollInterval sets the re-check interval
func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.interval = d }
}

// Monitor periodically re-resolves a fixed set of accounts and emits an
// event whenever an account's delegation status flips. Per-account failures
// are isolated by the resolver's batch contract and never stop the monitor.
type Monitor struct {
	resolver StatusResolver
	accounts []string
	clock    Clock
	interval time.Duration
	events   chan Event
}

// NewMonitor constructs a Monitor with required dependencies and options.
// By default it uses a real clock and a 30s re-check interval.
func NewMonitor(resolver StatusResolver, accounts []string, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		resolver: resolver,
		accounts: accounts,
		clock:    clock.SystemClock{},
		interval: DefaultMonitorInterval,
		events:   make(chan Event, 10),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the monitor and returns the events channel and done channel.
//
// Shutdown pattern:
//  1. Cancel context to request shutdown: cancel()
//  2. Monitor stops producing events and closes the events channel
//  3. Wait for complete shutdown: <-done
func (m *Monitor) Start(ctx context.Context) (<-chan Event, <-chan struct{}) {
	done := make(chan struct{})
	go func() {
		defer close(m.events)
		defer close(done)
		m.run(ctx)
	}()
	return m.events, done
}

// run performs the initial baseline check and then re-checks on every tick,
// respecting context cancellation.
func (m *Monitor) run(ctx context.Context) {
	m.events <- MonitorStarted{
		Accounts: m.accounts,
		Interval: m.interval,
	}

	// establish the baseline; no StatusChanged events on the first pass
	last := m.check(ctx, nil)

	for {
		select {
		case <-ctx.Done():
			m.events <- MonitorShutdown{Reason: ctx.Err()}
			return
		case <-m.clock.After(m.interval):
			last = m.check(ctx, last)
		}
	}
}

// check resolves all accounts once and emits StatusChanged events against
// the previous pass. Returns the statuses observed in this pass. A slot
// that failed to resolve keeps its last known status, so a transient
// lookup failure never reads as a delegation flip.
func (m *Monitor) check(ctx context.Context, prev map[string]DelegationStatus) map[string]DelegationStatus {
	results := m.resolver.ResolveMany(ctx, m.accounts)
	m.events <- CheckCompleted{Results: results}

	current := make(map[string]DelegationStatus, len(m.accounts))
	for i, account := range m.accounts {
		if !results[i].Resolved() {
			if status, ok := prev[account]; ok {
				current[account] = status
			}
			continue
		}

		status := results[i].Status
		current[account] = status
		if prevStatus, ok := prev[account]; ok && prevStatus != status {
			m.events <- StatusChanged{
				Account: account,
				From:    prevStatus,
				To:      status,
			}
		}
	}
	return current
}
