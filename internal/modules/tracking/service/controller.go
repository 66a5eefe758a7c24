package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	sessiondomain "dragochi/internal/modules/session/domain"
	"dragochi/internal/modules/tracking/domain"
	trackingout "dragochi/internal/modules/tracking/port/out"
	"dragochi/internal/platform/clock"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/metrics"
)

// Controller owns the one active session. Mutating calls hold the lock across
// store writes, so two transitions never interleave.
type Controller struct {
	mu        sync.Mutex
	clock     clock.Clock
	sessions  trackingout.SessionRecorder
	snapshots trackingout.SnapshotStore
	l         *log.Logger
	metrics   *metrics.Metrics

	state    domain.State
	snapshot []byte
}

func NewController(clock clock.Clock, sessions trackingout.SessionRecorder, snapshots trackingout.SnapshotStore, logger *log.Logger, m *metrics.Metrics) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		clock:     clock,
		sessions:  sessions,
		snapshots: snapshots,
		l:         logger,
		metrics:   m,
		state:     domain.Idle(),
	}
}

type Finished struct {
	SessionID       string
	StartAt         time.Time
	EndAt           time.Time
	DurationSeconds int
}

func (c *Controller) Start(ctx context.Context, setup domain.Setup) (domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != domain.StatusIdle {
		return c.state, nil
	}
	if !setup.Platform.Valid() {
		return c.state, fmt.Errorf("%w: unknown platform %q", apperrors.ErrInvalidInput, setup.Platform)
	}
	setup.FriendIDs = sessiondomain.NormalizeFriendIDs(setup.FriendIDs)

	now := c.clock.Now()
	id, err := c.sessions.Begin(ctx, now, setup)
	if err != nil {
		c.storeFailed("session")
		return c.state, fmt.Errorf("start session: %w", err)
	}
	c.state = domain.Begin(id, setup, now)
	c.transitioned("start", "session", id)
	return c.state, c.persist(ctx)
}

func (c *Controller) PauseResume(ctx context.Context) (domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status == domain.StatusIdle {
		return c.state, nil
	}
	c.state = c.state.Toggle(c.clock.Now())
	op := "resume"
	if c.state.Status == domain.StatusPaused {
		op = "pause"
	}
	c.transitioned(op, "session", c.state.SessionID, "elapsed", c.state.Elapsed)
	return c.state, c.persist(ctx)
}

// Tick refreshes the displayed elapsed value. It never touches a store.
func (c *Controller) Tick() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Elapsed = c.state.ElapsedAt(c.clock.Now())
	return c.state
}

// Stop ends the session. If the store rejects the update the tracking state is
// kept as it was so the stop can be retried. A session that was already ended
// by another process is never rewritten; the tracker drops it and goes idle.
func (c *Controller) Stop(ctx context.Context) (Finished, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Active() {
		return Finished{}, nil
	}
	now := c.clock.Now()
	final := c.state.ElapsedAt(now)
	startAt := *c.state.StartAt
	if err := c.sessions.Finish(ctx, c.state.SessionID, startAt, now, final, *c.state.Setup); err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			c.l.Warn("session already ended elsewhere", "session", c.state.SessionID)
			c.state = domain.Idle()
			c.transitioned("drop", "reason", "ended")
			return Finished{}, errors.Join(fmt.Errorf("stop session: %w", err), c.persist(ctx))
		}
		c.storeFailed("session")
		return Finished{}, fmt.Errorf("stop session: %w", err)
	}
	done := Finished{SessionID: c.state.SessionID, StartAt: startAt, EndAt: now, DurationSeconds: final}
	c.state = domain.Stopped(final)
	c.transitioned("stop", "session", done.SessionID, "duration", final)
	return done, c.persist(ctx)
}

// Discard drops the in-flight session without recording it.
func (c *Controller) Discard(ctx context.Context) (domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Active() {
		return c.state, nil
	}
	id := c.state.SessionID
	if err := c.sessions.Abandon(ctx, id); err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		c.storeFailed("session")
		return c.state, fmt.Errorf("discard session: %w", err)
	}
	c.state = domain.Idle()
	c.transitioned("discard", "session", id)
	return c.state, c.persist(ctx)
}

// RestoreSnapshot loads a snapshot into a tracker that has not started anything yet.
// Malformed data is reported and cleared; the tracker then stays idle. So is a
// snapshot whose session has already ended or been deleted.
func (c *Controller) RestoreSnapshot(ctx context.Context, data []byte) (domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.SessionID != "" || len(data) == 0 {
		return c.state, nil
	}
	snap, err := domain.DecodeSnapshot(data)
	if err != nil {
		c.l.Warn("discarding unreadable tracking snapshot", "err", err)
		c.snapshot = nil
		if clearErr := c.snapshots.Clear(ctx); clearErr != nil {
			c.storeFailed("snapshot")
			c.l.Warn("clear snapshot", "err", clearErr)
		}
		return c.state, err
	}
	if snap.Status == domain.StatusIdle {
		return c.state, nil
	}
	running, err := c.sessions.Running(ctx, snap.SessionID)
	if err != nil {
		c.storeFailed("session")
		c.l.Warn("check snapshot session", "session", snap.SessionID, "err", err)
	} else if !running {
		c.l.Warn("dropping snapshot of a finished session", "session", snap.SessionID)
		c.snapshot = nil
		if clearErr := c.snapshots.Clear(ctx); clearErr != nil {
			c.storeFailed("snapshot")
			return c.state, fmt.Errorf("clear snapshot: %w", clearErr)
		}
		return c.state, nil
	}
	c.state = domain.Restore(snap, c.clock.Now())
	c.snapshot = append([]byte(nil), data...)
	c.transitioned("restore", "session", c.state.SessionID, "status", c.state.Status, "elapsed", c.state.Elapsed)
	return c.state, nil
}

func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the encoded snapshot of the current state, nil when idle.
func (c *Controller) Snapshot() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.snapshot...)
}

// persist refreshes the in-memory snapshot and hands it to the store. Callers have
// already committed the transition; a store failure is logged and returned.
func (c *Controller) persist(ctx context.Context) error {
	snap, ok := domain.SnapshotOf(c.state)
	if !ok {
		c.snapshot = nil
		if err := c.snapshots.Clear(ctx); err != nil {
			c.storeFailed("snapshot")
			c.l.Warn("clear snapshot", "err", err)
			return fmt.Errorf("clear snapshot: %w", err)
		}
		return nil
	}
	data, err := domain.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	c.snapshot = data
	if err := c.snapshots.Save(ctx, data); err != nil {
		c.storeFailed("snapshot")
		c.l.Warn("save snapshot", "session", snap.SessionID, "err", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (c *Controller) transitioned(op string, kv ...any) {
	c.l.Info(op, kv...)
	if c.metrics != nil {
		c.metrics.Transitions.WithLabelValues(op).Inc()
	}
}

func (c *Controller) storeFailed(store string) {
	if c.metrics != nil {
		c.metrics.StoreFailures.WithLabelValues(store).Inc()
	}
}
