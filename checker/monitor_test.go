package checker_test

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solbound/delcheck/checker"
)

func TestMonitorStatusTracking(t *testing.T) {
	t.Parallel()

	t.Run("it establishes a baseline without change events", func(t *testing.T) {
		t.Parallel()

		// Arrange
		accounts := []string{"alpha", "beta"}
		resolver := scriptedResolver(
			statuses(checker.StatusNotDelegated, checker.StatusDelegated),
		)
		clk := newFakeClock()
		monitor := checker.NewMonitor(resolver, accounts, checker.WithClock(clk))

		ctx, cancel := context.WithCancel(t.Context())

		// Act
		events, done := monitor.Start(ctx)

		// Assert
		started := nextEvent[checker.MonitorStarted](t, events)
		assert.Equal(t, accounts, started.Accounts)

		completed := nextEvent[checker.CheckCompleted](t, events)
		require.Len(t, completed.Results, 2)
		assert.Equal(t, checker.StatusNotDelegated, completed.Results[0].Status)
		assert.Equal(t, checker.StatusDelegated, completed.Results[1].Status)

		cancel()
		shutdown := nextEvent[checker.MonitorShutdown](t, events)
		assert.ErrorIs(t, shutdown.Reason, context.Canceled)
		<-done
	})

	t.Run("it emits a change event when a status flips", func(t *testing.T) {
		t.Parallel()

		// Arrange - beta flips to delegated on the second pass
		accounts := []string{"alpha", "beta"}
		resolver := scriptedResolver(
			statuses(checker.StatusNotDelegated, checker.StatusNotDelegated),
			statuses(checker.StatusNotDelegated, checker.StatusDelegated),
		)
		clk := newFakeClock()
		monitor := checker.NewMonitor(resolver, accounts, checker.WithClock(clk))

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		// Act
		events, done := monitor.Start(ctx)

		nextEvent[checker.MonitorStarted](t, events)
		nextEvent[checker.CheckCompleted](t, events) // baseline

		clk.tick()
		nextEvent[checker.CheckCompleted](t, events)

		// Assert
		changed := nextEvent[checker.StatusChanged](t, events)
		assert.Equal(t, "beta", changed.Account)
		assert.Equal(t, checker.StatusNotDelegated, changed.From)
		assert.Equal(t, checker.StatusDelegated, changed.To)

		cancel()
		nextEvent[checker.MonitorShutdown](t, events)
		<-done
	})

	t.Run("it stays quiet while statuses are stable", func(t *testing.T) {
		t.Parallel()

		// Arrange
		accounts := []string{"alpha"}
		resolver := scriptedResolver(
			statuses(checker.StatusDelegated),
			statuses(checker.StatusDelegated),
		)
		clk := newFakeClock()
		monitor := checker.NewMonitor(resolver, accounts, checker.WithClock(clk))

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		// Act
		events, done := monitor.Start(ctx)

		nextEvent[checker.MonitorStarted](t, events)
		nextEvent[checker.CheckCompleted](t, events)

		clk.tick()
		nextEvent[checker.CheckCompleted](t, events)

		cancel()

		// Assert - shutdown arrives with no StatusChanged in between
		nextEvent[checker.MonitorShutdown](t, events)
		<-done
	})

	t.Run("it does not flip status on a transient lookup failure", func(t *testing.T) {
		t.Parallel()

		// Arrange - alpha fails to resolve on the second pass only
		accounts := []string{"alpha"}
		resolver := scriptedResolver(
			statuses(checker.StatusDelegated),
			statuses(statusUnresolved),
			statuses(checker.StatusDelegated),
		)
		clk := newFakeClock()
		monitor := checker.NewMonitor(resolver, accounts, checker.WithClock(clk))

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		// Act
		events, done := monitor.Start(ctx)

		nextEvent[checker.MonitorStarted](t, events)
		nextEvent[checker.CheckCompleted](t, events) // baseline: delegated

		clk.tick()
		nextEvent[checker.CheckCompleted](t, events) // lookup failed

		clk.tick()
		nextEvent[checker.CheckCompleted](t, events) // delegated again

		cancel()

		// Assert - no StatusChanged across the blip in either direction
		nextEvent[checker.MonitorShutdown](t, events)
		<-done
	})
}

func TestSubscriberDispatch(t *testing.T) {
	t.Parallel()

	t.Run("it dispatches events to the configured handlers", func(t *testing.T) {
		t.Parallel()

		// Arrange
		events := make(chan checker.Event, 4)
		var changes []checker.StatusChanged
		var shutdowns int

		closer := checker.NewSubscriber(events,
			checker.OnStatusChanged(func(e checker.StatusChanged) {
				changes = append(changes, e)
			}),
			checker.OnMonitorShutdown(func(checker.MonitorShutdown) {
				shutdowns++
			}),
		)

		// Act
		events <- checker.StatusChanged{Account: "alpha", From: checker.StatusNotDelegated, To: checker.StatusDelegated}
		events <- checker.MonitorShutdown{Reason: context.Canceled}
		close(events)
		closer()

		// Assert - closer returns only after all events were handled
		require.Len(t, changes, 1)
		assert.Equal(t, "alpha", changes[0].Account)
		assert.Equal(t, 1, shutdowns)
	})

	t.Run("it ignores events without handlers", func(t *testing.T) {
		t.Parallel()

		events := make(chan checker.Event, 2)
		closer := checker.NewSubscriber(events)

		events <- checker.MonitorStarted{}
		events <- checker.CheckCompleted{}
		close(events)

		closer() // must not block or panic
	})
}

// statusUnresolved scripts a placeholder slot, as produced for an account
// whose lookup failed
const statusUnresolved checker.DelegationStatus = "unresolved"

// scriptedResolver replays per-pass status lists; the last pass repeats
func scriptedResolver(passes ...[]checker.DelegationStatus) checker.StatusResolver {
	calls := 0
	return statusResolverFunc(func(_ context.Context, accounts []string) []checker.DelegationResult {
		pass := passes[min(calls, len(passes)-1)]
		calls++

		results := make([]checker.DelegationResult, len(accounts))
		for i, account := range accounts {
			if pass[i] == statusUnresolved {
				results[i] = checker.DelegationResult{Status: checker.StatusNotDelegated}
				continue
			}

			var key solana.PublicKey
			copy(key[:], account)
			results[i] = checker.DelegationResult{Account: key, Status: pass[i]}
		}
		return results
	})
}

func statuses(s ...checker.DelegationStatus) []checker.DelegationStatus { return s }

type statusResolverFunc func(ctx context.Context, accounts []string) []checker.DelegationResult

func (f statusResolverFunc) ResolveMany(ctx context.Context, accounts []string) []checker.DelegationResult {
	return f(ctx, accounts)
}

// nextEvent reads the next event and asserts its concrete type
func nextEvent[T any](t *testing.T, events <-chan checker.Event) T {
	t.Helper()

	select {
	case ev, ok := <-events:
		require.True(t, ok, "events channel closed while waiting for %T", *new(T))
		typed, ok := ev.(T)
		require.True(t, ok, "expected %T, got %T", *new(T), ev)
		return typed
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %T", *new(T))
		return *new(T)
	}
}

// fakeClock is tick-controlled for deterministic polling tests
type fakeClock struct {
	ticks chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{ticks: make(chan time.Time)}
}

func (c *fakeClock) After(time.Duration) <-chan time.Time { return c.ticks }

func (c *fakeClock) Now() time.Time { return time.Now() }

func (c *fakeClock) tick() { c.ticks <- time.Now() }
