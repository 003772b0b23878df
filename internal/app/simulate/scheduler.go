package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"fleetsim/internal/app/ports"
	"fleetsim/internal/domain/fleet"

	"golang.org/x/sync/errgroup"
)

// Broadcaster receives every snapshot the scheduler publishes. Implemented
// by the websocket hub; may be nil.
type Broadcaster interface {
	Broadcast(rows []fleet.VesselWithState)
}

type Config struct {
	Repo    ports.FleetRepository
	Tx      ports.TxManager
	Clock   *fleet.SimClock
	Logger  *slog.Logger
	Metrics ports.TickMetrics
	Stream  Broadcaster

	// Interval between ticks of the Run loop.
	Interval time.Duration
	// StoreTimeout bounds all store I/O for one tick or reset.
	StoreTimeout time.Duration
	// WriteConcurrency bounds parallel per-vessel state writes.
	WriteConcurrency int
}

// Scheduler is the sole writer of vessel state. One goroutine runs the tick
// loop; API readers only touch the published snapshot and the speed
// multiplier. ResetAll stops the world: it holds the same lock as Tick, so
// no tick overlaps a reset and no caller ever sees a partial fleet.
type Scheduler struct {
	repo    ports.FleetRepository
	tx      ports.TxManager
	clock   *fleet.SimClock
	logger  *slog.Logger
	metrics ports.TickMetrics
	stream  Broadcaster

	interval     time.Duration
	storeTimeout time.Duration
	writeLimit   int

	// multiplier is the float64 bit pattern of the current speed multiplier.
	multiplier atomic.Uint64

	mu      sync.Mutex // serializes Tick and ResetAll
	vessels []fleet.VesselWithState
	routes  map[string]fleet.Route
	initial map[string]fleet.VesselState

	snapshot atomic.Pointer[[]fleet.VesselWithState]
}

func New(cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = fleet.NewSimClock(nil)
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	if cfg.WriteConcurrency <= 0 {
		cfg.WriteConcurrency = 4
	}
	s := &Scheduler{
		repo:         cfg.Repo,
		tx:           cfg.Tx,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		stream:       cfg.Stream,
		interval:     cfg.Interval,
		storeTimeout: cfg.StoreTimeout,
		writeLimit:   cfg.WriteConcurrency,
	}
	s.multiplier.Store(math.Float64bits(1.0))
	return s
}

// Start loads routes and state rows and captures the initial snapshot of
// every vessel. It must run once before Tick, Run or ResetAll.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	routes, err := s.repo.Routes(ctx)
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	rows, err := s.repo.GetAllWithStates(ctx)
	if err != nil {
		return fmt.Errorf("load fleet: %w", err)
	}

	initial := make(map[string]fleet.VesselState, len(rows))
	for _, row := range rows {
		initial[row.Vessel.ID] = row.State
	}

	s.routes = routes
	s.vessels = rows
	s.initial = initial
	s.publishLocked()
	return nil
}

// Run ticks on a fixed interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.logger.Error("tick failed", "err", err)
			}
		}
	}
}

// SetSpeedMultiplier validates and stores the multiplier used by subsequent
// ticks. Validation happens before anything else is touched.
func (s *Scheduler) SetSpeedMultiplier(m float64) error {
	if err := fleet.ValidateSpeedMultiplier(m); err != nil {
		return err
	}
	s.multiplier.Store(math.Float64bits(m))
	return nil
}

func (s *Scheduler) SpeedMultiplier() float64 {
	return math.Float64frombits(s.multiplier.Load())
}

// Snapshot returns the last published fleet snapshot. Safe for any number
// of concurrent readers; nil before Start.
func (s *Scheduler) Snapshot() []fleet.VesselWithState {
	p := s.snapshot.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Tick advances every non-Maintenance vessel by one simulated step and
// commits the new rows. A failed write drops that vessel's update for this
// tick; the previous row stays authoritative and the next tick retries
// naturally.
func (s *Scheduler) Tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt, err := s.clock.Advance(s.SpeedMultiplier())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	now := time.Now()
	g := new(errgroup.Group)
	g.SetLimit(s.writeLimit)

	for i := range s.vessels {
		row := &s.vessels[i]
		if row.State.Status == fleet.StatusMaintenance {
			continue
		}

		prev := row.State
		route := s.routes[row.Vessel.ID]
		if row.State.Status == fleet.StatusActive {
			fleet.AdvanceNavigation(&row.State, route, dt)
		}
		fleet.AdvanceEnergy(&row.State, route, dt)
		row.State.UpdatedAt = now

		// Rows are independent, so writes for different vessels may run
		// concurrently. Each goroutine owns exactly one slice element.
		g.Go(func() error {
			if err := s.repo.UpdateState(ctx, row.State); err != nil {
				s.logger.Error("state write dropped",
					"vessel", row.Vessel.ID, "err", err)
				if s.metrics != nil {
					s.metrics.RecordWriteFailure()
				}
				row.State = prev
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordTick()
	}
	s.publishLocked()
	return nil
}

// ResetAll restores every vessel to its initial snapshot in one transaction
// and re-anchors the simulation clock. The scheduler lock suspends ticking
// for the duration, so readers see either the old fleet or the fully reset
// one, never a mix.
func (s *Scheduler) ResetAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	now := time.Now()
	restored := make([]fleet.VesselState, 0, len(s.vessels))
	for _, row := range s.vessels {
		st, ok := s.initial[row.Vessel.ID]
		if !ok {
			return 0, fmt.Errorf("no initial snapshot for vessel %s", row.Vessel.ID)
		}
		st.WaypointIndex = 0
		st.UpdatedAt = now
		restored = append(restored, st)
	}

	var count int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.repo.ReplaceAllStates(ctx, restored)
		if err != nil {
			return err
		}
		count = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("reset fleet: %w", err)
	}

	for i := range s.vessels {
		s.vessels[i].State = restored[i]
	}
	s.clock.Reset()
	if s.metrics != nil {
		s.metrics.RecordReset()
	}
	s.publishLocked()
	return count, nil
}

// publishLocked copies the working set into a fresh snapshot. Callers must
// hold s.mu.
func (s *Scheduler) publishLocked() {
	snap := make([]fleet.VesselWithState, len(s.vessels))
	copy(snap, s.vessels)
	s.snapshot.Store(&snap)
	if s.stream != nil {
		s.stream.Broadcast(snap)
	}
}
