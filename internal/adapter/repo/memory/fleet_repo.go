package memory

import (
	"context"
	"sort"

	"fleetsim/internal/app/ports"
	"fleetsim/internal/domain/fleet"
)

type FleetRepo struct {
	store *Store
}

func NewFleetRepo(store *Store) FleetRepo {
	return FleetRepo{store: store}
}

func (r FleetRepo) GetAllWithStates(_ context.Context) ([]fleet.VesselWithState, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fleet.VesselWithState, 0, len(r.store.order))
	for _, id := range r.store.order {
		out = append(out, fleet.VesselWithState{
			Vessel: r.store.vessels[id],
			State:  r.store.states[id],
		})
	}
	return out, nil
}

func (r FleetRepo) GetByID(_ context.Context, id string) (fleet.VesselWithState, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.vessels[id]
	if !ok {
		return fleet.VesselWithState{}, ports.ErrNotFound
	}
	return fleet.VesselWithState{Vessel: v, State: r.store.states[id]}, nil
}

func (r FleetRepo) Routes(_ context.Context) (map[string]fleet.Route, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]fleet.Route, len(r.store.routes))
	for id, route := range r.store.routes {
		cp := make(fleet.Route, len(route))
		copy(cp, route)
		out[id] = cp
	}
	return out, nil
}

func (r FleetRepo) UpdateState(_ context.Context, st fleet.VesselState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.vessels[st.VesselID]; !ok {
		return ports.ErrNotFound
	}
	r.store.states[st.VesselID] = st
	return nil
}

func (r FleetRepo) ReplaceAllStates(_ context.Context, states []fleet.VesselState) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, st := range states {
		if _, ok := r.store.vessels[st.VesselID]; !ok {
			return 0, ports.ErrNotFound
		}
	}
	for _, st := range states {
		r.store.states[st.VesselID] = st
	}
	return len(states), nil
}

func (r FleetRepo) SeedFleet(_ context.Context, seeds []fleet.SeedVessel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if len(r.store.order) > 0 {
		return nil
	}
	for _, s := range seeds {
		r.store.vessels[s.Vessel.ID] = s.Vessel
		r.store.states[s.Vessel.ID] = s.InitialState
		route := make(fleet.Route, len(s.Route))
		copy(route, s.Route)
		r.store.routes[s.Vessel.ID] = route
		r.store.order = append(r.store.order, s.Vessel.ID)
	}
	sort.Strings(r.store.order)
	return nil
}

var _ ports.FleetRepository = FleetRepo{}
