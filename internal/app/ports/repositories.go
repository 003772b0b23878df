package ports

import (
	"context"

	"fleetsim/internal/domain/fleet"
)

// FleetRepository is the durable StateStore: immutable vessel metadata and
// routes plus the mutable per-vessel state rows.
//
// Only the simulation scheduler calls UpdateState and ReplaceAllStates;
// readers only use the Get methods.
type FleetRepository interface {
	// GetAllWithStates returns a consistent metadata+state join for the
	// whole fleet, ordered by vessel id.
	GetAllWithStates(ctx context.Context) ([]fleet.VesselWithState, error)

	// GetByID returns one vessel's join or ErrNotFound.
	GetByID(ctx context.Context, id string) (fleet.VesselWithState, error)

	// Routes returns every vessel's ordered waypoint list. Routes are
	// read-only after seeding.
	Routes(ctx context.Context) (map[string]fleet.Route, error)

	// UpdateState is a full-row upsert, last-writer-wins. There is no
	// partial-field patch.
	UpdateState(ctx context.Context, st fleet.VesselState) error

	// ReplaceAllStates rewrites every given state row and returns how many
	// rows it wrote. Callers wanting atomicity wrap it in TxManager.RunInTx.
	ReplaceAllStates(ctx context.Context, states []fleet.VesselState) (int, error)

	// SeedFleet creates vessels, routes and initial state rows. It is a
	// no-op when the fleet already exists.
	SeedFleet(ctx context.Context, seeds []fleet.SeedVessel) error
}

// TickMetrics records operational counters for the simulation loop.
type TickMetrics interface {
	RecordTick()
	RecordWriteFailure()
	RecordReset()
}
