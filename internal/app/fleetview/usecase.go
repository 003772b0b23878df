package fleetview

import (
	"context"

	"fleetsim/internal/app/ports"
	"fleetsim/internal/domain/fleet"
)

// SnapshotSource serves the snapshot last published by the scheduler. Reads
// through it are lock-free and never race with the tick writer.
type SnapshotSource interface {
	Snapshot() []fleet.VesselWithState
}

type UseCase struct {
	Repo      ports.FleetRepository
	Snapshots SnapshotSource
}

// Fleet returns the whole fleet, preferring the scheduler's published
// snapshot and falling back to the store before the first tick.
func (u UseCase) Fleet(ctx context.Context) ([]VesselStatus, error) {
	if u.Snapshots != nil {
		if rows := u.Snapshots.Snapshot(); rows != nil {
			return FleetStatuses(rows), nil
		}
	}
	rows, err := u.Repo.GetAllWithStates(ctx)
	if err != nil {
		return nil, err
	}
	return FleetStatuses(rows), nil
}

// Vessel returns a single vessel's view or ports.ErrNotFound.
func (u UseCase) Vessel(ctx context.Context, id string) (VesselStatus, error) {
	if u.Snapshots != nil {
		for _, row := range u.Snapshots.Snapshot() {
			if row.Vessel.ID == id {
				return StatusFromVessel(row), nil
			}
		}
	}
	row, err := u.Repo.GetByID(ctx, id)
	if err != nil {
		return VesselStatus{}, err
	}
	return StatusFromVessel(row), nil
}
