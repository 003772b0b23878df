package fleet

import (
	"time"

	"fleetsim/internal/domain/geo"
)

// DemoFleet returns the seed data for the demo survey fleet: four vessels
// working North Sea survey patterns, one stationary guard vessel, and one
// vessel parked in Maintenance.
func DemoFleet(now time.Time) []SeedVessel {
	seeds := []SeedVessel{
		{
			Vessel: Vessel{
				ID:         "vessel-001",
				Name:       "RV Meridian",
				CrewCount:  18,
				Equipment:  "Multibeam echosounder, sub-bottom profiler",
				Project:    "North Sea Wind Farm Zone 4",
				SurveyType: "Bathymetric",
			},
			Route: Route{
				{Lat: 54.20, Lon: 2.80, Seq: 0},
				{Lat: 54.32, Lon: 3.05, Seq: 1},
				{Lat: 54.18, Lon: 3.28, Seq: 2},
				{Lat: 54.05, Lon: 3.02, Seq: 3},
			},
			InitialState: VesselState{SpeedKnots: 12, EnergyLevel: 100, Status: StatusActive},
		},
		{
			Vessel: Vessel{
				ID:         "vessel-002",
				Name:       "MV Tidewater",
				CrewCount:  14,
				Equipment:  "Side-scan sonar array, USBL beacon",
				Project:    "Dogger Bank Cable Route",
				SurveyType: "Geophysical",
			},
			Route: Route{
				{Lat: 54.75, Lon: 1.90, Seq: 0},
				{Lat: 54.88, Lon: 2.15, Seq: 1},
				{Lat: 55.01, Lon: 2.40, Seq: 2},
				{Lat: 54.92, Lon: 2.68, Seq: 3},
				{Lat: 54.80, Lon: 2.30, Seq: 4},
			},
			InitialState: VesselState{SpeedKnots: 10, EnergyLevel: 92, Status: StatusActive},
		},
		{
			Vessel: Vessel{
				ID:         "vessel-003",
				Name:       "RV Pelican",
				CrewCount:  9,
				Equipment:  "Towed magnetometer sled",
				Project:    "Baltic Approach Pipeline Inspection",
				SurveyType: "UXO Clearance",
			},
			Route: Route{
				{Lat: 55.30, Lon: 4.10, Seq: 0},
				{Lat: 55.41, Lon: 4.35, Seq: 1},
				{Lat: 55.28, Lon: 4.55, Seq: 2},
			},
			InitialState: VesselState{SpeedKnots: 8, EnergyLevel: 85, Status: StatusActive},
		},
		{
			Vessel: Vessel{
				ID:         "vessel-004",
				Name:       "SV Cormorant",
				CrewCount:  5,
				Equipment:  "ADCP mooring, met station",
				Project:    "North Sea Wind Farm Zone 4",
				SurveyType: "Metocean",
			},
			// Single waypoint: a permanently stationed guard vessel.
			Route: Route{
				{Lat: 54.10, Lon: 2.95, Seq: 0},
			},
			InitialState: VesselState{SpeedKnots: 0, EnergyLevel: 100, Status: StatusActive},
		},
		{
			Vessel: Vessel{
				ID:         "vessel-005",
				Name:       "RV Stratus",
				CrewCount:  12,
				Equipment:  "ROV spread (in refit)",
				Project:    "Dogger Bank Cable Route",
				SurveyType: "Inspection",
			},
			Route: Route{
				{Lat: 54.60, Lon: 1.20, Seq: 0},
				{Lat: 54.72, Lon: 1.45, Seq: 1},
			},
			InitialState: VesselState{SpeedKnots: 0, EnergyLevel: 64, Status: StatusMaintenance},
		},
	}

	for i := range seeds {
		st := &seeds[i].InitialState
		route := seeds[i].Route
		st.VesselID = seeds[i].Vessel.ID
		st.Lat = route[0].Lat
		st.Lon = route[0].Lon
		st.WaypointIndex = 0
		st.OriginalSpeedKnots = st.SpeedKnots
		if st.Status == StatusMaintenance {
			st.OriginalSpeedKnots = 8
		}
		if len(route) > 1 {
			st.Heading = geo.BearingDeg(route[0].Point(), route[1].Point())
		}
		st.SpeedDescription = SpeedText(st.SpeedKnots)
		st.Conditions = "Calm seas, on station"
		st.UpdatedAt = now
	}
	return seeds
}
