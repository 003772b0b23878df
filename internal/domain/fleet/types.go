package fleet

import (
	"errors"
	"time"

	"fleetsim/internal/domain/geo"
)

// Status is the closed set of vessel operating modes. Transitions between
// Active and Charging are driven by the energy model; Maintenance is only
// entered and left through external intervention.
type Status string

const (
	StatusActive      Status = "Active"
	StatusCharging    Status = "Charging"
	StatusMaintenance Status = "Maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCharging, StatusMaintenance:
		return true
	}
	return false
}

var ErrSpeedOutOfRange = errors.New("speed multiplier out of range")

// Vessel is immutable metadata, created once at seed time.
type Vessel struct {
	ID         string
	Name       string
	CrewCount  int
	Equipment  string
	Project    string
	SurveyType string
}

// Waypoint is one target point in a vessel's ordered route.
type Waypoint struct {
	Lat float64
	Lon float64
	Seq int
}

func (w Waypoint) Point() geo.Point {
	return geo.Point{Lat: w.Lat, Lon: w.Lon}
}

// Route is an ordered, non-empty waypoint sequence. Immutable after seeding.
// A single-waypoint route marks a stationary vessel.
type Route []Waypoint

// VesselState is the mutable 1:1 companion of a Vessel. It is mutated only
// by the simulation scheduler and wholesale-replaced on reset.
type VesselState struct {
	VesselID           string
	Lat                float64
	Lon                float64
	Heading            float64
	SpeedKnots         float64
	OriginalSpeedKnots float64
	EnergyLevel        float64
	Status             Status
	SpeedDescription   string
	Conditions         string
	AreaCovered        float64
	WaypointIndex      int
	UpdatedAt          time.Time
}

func (s VesselState) Position() geo.Point {
	return geo.Point{Lat: s.Lat, Lon: s.Lon}
}

// VesselWithState joins immutable metadata with the current state row.
type VesselWithState struct {
	Vessel Vessel
	State  VesselState
}

// SeedVessel bundles everything needed to create one vessel at seed time.
type SeedVessel struct {
	Vessel       Vessel
	Route        Route
	InitialState VesselState
}
