package simulate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	metricsinmem "fleetsim/internal/adapter/metrics/inmemory"
	"fleetsim/internal/adapter/repo/memory"
	"fleetsim/internal/app/ports"
	"fleetsim/internal/domain/fleet"
)

func newTestScheduler(t *testing.T, repo ports.FleetRepository, metrics ports.TickMetrics) *Scheduler {
	t.Helper()
	s := New(Config{
		Repo:    repo,
		Tx:      memory.NewTxManager(),
		Clock:   fleet.NewSimClock(nil),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics,
	})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func seededMemoryRepo(t *testing.T) memory.FleetRepo {
	t.Helper()
	repo := memory.NewFleetRepo(memory.NewStore())
	if err := repo.SeedFleet(context.Background(), fleet.DemoFleet(time.Now())); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func stateByID(t *testing.T, rows []fleet.VesselWithState, id string) fleet.VesselState {
	t.Helper()
	for _, row := range rows {
		if row.Vessel.ID == id {
			return row.State
		}
	}
	t.Fatalf("vessel %s not in snapshot", id)
	return fleet.VesselState{}
}

func TestScheduler_TickMovesActiveVessels(t *testing.T) {
	repo := seededMemoryRepo(t)
	s := newTestScheduler(t, repo, nil)

	before := stateByID(t, s.Snapshot(), "vessel-001")
	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	after := stateByID(t, s.Snapshot(), "vessel-001")

	if before.Lat == after.Lat && before.Lon == after.Lon {
		t.Fatal("active vessel did not move")
	}
	if after.EnergyLevel >= before.EnergyLevel {
		t.Fatalf("energy did not drain: %v -> %v", before.EnergyLevel, after.EnergyLevel)
	}

	// The tick must also be durable, not just in the published snapshot.
	persisted, err := repo.GetByID(context.Background(), "vessel-001")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if persisted.State != after {
		t.Fatalf("store row differs from snapshot:\n store %+v\n snap  %+v", persisted.State, after)
	}
}

func TestScheduler_MaintenanceVesselFrozen(t *testing.T) {
	s := newTestScheduler(t, seededMemoryRepo(t), nil)
	before := stateByID(t, s.Snapshot(), "vessel-005")

	for i := 0; i < 50; i++ {
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}

	after := stateByID(t, s.Snapshot(), "vessel-005")
	if before != after {
		t.Fatalf("maintenance vessel mutated:\n before %+v\n after  %+v", before, after)
	}
}

func TestScheduler_InvariantsAcrossTicks(t *testing.T) {
	s := newTestScheduler(t, seededMemoryRepo(t), nil)
	s.SetSpeedMultiplier(10)

	routes := s.routes
	for i := 0; i < 500; i++ {
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
		for _, row := range s.Snapshot() {
			st := row.State
			if st.EnergyLevel < 0 || st.EnergyLevel > 100 {
				t.Fatalf("tick %d %s: energy %v", i, row.Vessel.ID, st.EnergyLevel)
			}
			if st.Heading < 0 || st.Heading >= 360 {
				t.Fatalf("tick %d %s: heading %v", i, row.Vessel.ID, st.Heading)
			}
			if n := len(routes[row.Vessel.ID]); st.WaypointIndex < 0 || st.WaypointIndex >= n {
				t.Fatalf("tick %d %s: waypoint index %d of %d", i, row.Vessel.ID, st.WaypointIndex, n)
			}
		}
	}
}

func TestScheduler_SpeedMultiplierValidation(t *testing.T) {
	s := newTestScheduler(t, seededMemoryRepo(t), nil)
	for _, m := range []float64{0, 0.05, 11, -3} {
		if err := s.SetSpeedMultiplier(m); !errors.Is(err, fleet.ErrSpeedOutOfRange) {
			t.Fatalf("SetSpeedMultiplier(%v) = %v, want ErrSpeedOutOfRange", m, err)
		}
	}
	if got := s.SpeedMultiplier(); got != 1.0 {
		t.Fatalf("rejected multiplier leaked: %v", got)
	}
	if err := s.SetSpeedMultiplier(2.5); err != nil {
		t.Fatalf("SetSpeedMultiplier(2.5): %v", err)
	}
	if got := s.SpeedMultiplier(); got != 2.5 {
		t.Fatalf("multiplier = %v, want 2.5", got)
	}
}

// failingRepo drops every write for one vessel id.
type failingRepo struct {
	ports.FleetRepository
	failID string
}

var errStoreDown = errors.New("store down")

func (r failingRepo) UpdateState(ctx context.Context, st fleet.VesselState) error {
	if st.VesselID == r.failID {
		return errStoreDown
	}
	return r.FleetRepository.UpdateState(ctx, st)
}

func TestScheduler_WriteFailureDropsOnlyThatVessel(t *testing.T) {
	repo := seededMemoryRepo(t)
	metrics := metricsinmem.NewRecorder()
	s := newTestScheduler(t, failingRepo{FleetRepository: repo, failID: "vessel-002"}, metrics)

	before := stateByID(t, s.Snapshot(), "vessel-002")
	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	// The failed vessel keeps its previous state everywhere.
	if got := stateByID(t, s.Snapshot(), "vessel-002"); got != before {
		t.Fatalf("dropped update leaked into snapshot:\n before %+v\n after  %+v", before, got)
	}
	persisted, _ := repo.GetByID(context.Background(), "vessel-002")
	if persisted.State != before {
		t.Fatalf("dropped update leaked into store")
	}

	// Other vessels still commit.
	other, _ := repo.GetByID(context.Background(), "vessel-001")
	if other.State.UpdatedAt.IsZero() || other.State.EnergyLevel == 100 {
		t.Fatalf("healthy vessel did not commit: %+v", other.State)
	}

	if snap := metrics.Snapshot(); snap.WriteFailures != 1 {
		t.Fatalf("write failures = %d, want 1", snap.WriteFailures)
	}
}

func TestScheduler_ResetRestoresInitialSnapshot(t *testing.T) {
	repo := seededMemoryRepo(t)
	metrics := metricsinmem.NewRecorder()
	s := newTestScheduler(t, repo, metrics)

	initial := map[string]fleet.VesselState{}
	for _, row := range s.Snapshot() {
		initial[row.Vessel.ID] = row.State
	}

	s.SetSpeedMultiplier(10)
	for i := 0; i < 200; i++ {
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
	}

	anchorBefore := s.clock.LastTick()
	n, err := s.ResetAll(context.Background())
	if err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if n != len(initial) {
		t.Fatalf("reset count = %d, want %d", n, len(initial))
	}

	rows, err := repo.GetAllWithStates(context.Background())
	if err != nil {
		t.Fatalf("GetAllWithStates: %v", err)
	}
	for _, row := range rows {
		want := initial[row.Vessel.ID]
		got := row.State
		if got.UpdatedAt.Before(anchorBefore) {
			t.Fatalf("%s: stale timestamp %v", row.Vessel.ID, got.UpdatedAt)
		}
		// Every field except the timestamp must match the initial snapshot.
		got.UpdatedAt = want.UpdatedAt
		if got != want {
			t.Fatalf("%s not restored:\n got  %+v\n want %+v", row.Vessel.ID, got, want)
		}
		if got.WaypointIndex != 0 {
			t.Fatalf("%s: waypoint index %d after reset", row.Vessel.ID, got.WaypointIndex)
		}
	}

	if snap := metrics.Snapshot(); snap.Resets != 1 {
		t.Fatalf("resets = %d, want 1", snap.Resets)
	}
}

// brokenTx refuses every transaction.
type brokenTx struct{}

func (brokenTx) RunInTx(context.Context, func(context.Context) error) error {
	return errStoreDown
}

func TestScheduler_ResetFailureLeavesFleetVisible(t *testing.T) {
	repo := seededMemoryRepo(t)
	s := New(Config{
		Repo:   repo,
		Tx:     brokenTx{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 10; i++ {
		s.Tick(context.Background())
	}
	before := s.Snapshot()

	if _, err := s.ResetAll(context.Background()); !errors.Is(err, errStoreDown) {
		t.Fatalf("ResetAll err = %v, want wrapped errStoreDown", err)
	}

	after := s.Snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("failed reset mutated visible state: %+v vs %+v", before[i], after[i])
		}
	}
}

func TestScheduler_SnapshotAvailableBeforeFirstTick(t *testing.T) {
	s := newTestScheduler(t, seededMemoryRepo(t), nil)
	snap := s.Snapshot()
	if len(snap) == 0 {
		t.Fatal("Start did not publish a snapshot")
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Vessel.ID >= snap[i].Vessel.ID {
			t.Fatalf("snapshot not ordered by id")
		}
	}
}
