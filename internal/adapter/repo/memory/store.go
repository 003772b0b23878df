// Package memory is an in-process StateStore used by tests and by the
// no-database demo mode.
package memory

import (
	"sync"

	"fleetsim/internal/domain/fleet"
)

type Store struct {
	mu      sync.RWMutex
	vessels map[string]fleet.Vessel
	states  map[string]fleet.VesselState
	routes  map[string]fleet.Route
	order   []string
}

func NewStore() *Store {
	return &Store{
		vessels: make(map[string]fleet.Vessel),
		states:  make(map[string]fleet.VesselState),
		routes:  make(map[string]fleet.Route),
	}
}
