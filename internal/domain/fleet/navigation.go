package fleet

import (
	"math"

	"fleetsim/internal/domain/geo"
)

// AdvanceNavigation moves st toward its current route waypoint for dt
// simulated seconds. It is only meaningful for an Active vessel; the caller
// is responsible for skipping Charging and Maintenance vessels.
//
// Single-waypoint routes mark stationary vessels: position, heading and
// coverage are left untouched.
func AdvanceNavigation(st *VesselState, route Route, dt float64) {
	if len(route) <= 1 {
		return
	}

	traveled := st.SpeedKnots / 3600 * dt

	target := route[st.WaypointIndex]
	distToTarget := geo.DistanceNM(st.Position(), target.Point())

	// Arrival is tested before moving, against a threshold that grows with
	// per-tick travel so high multipliers cannot overshoot a waypoint.
	threshold := ArrivalBaseThresholdNM + traveled*ArrivalTravelFactor
	if distToTarget < threshold {
		st.WaypointIndex = (st.WaypointIndex + 1) % len(route)
		target = route[st.WaypointIndex]
	}

	st.Heading = geo.BearingDeg(st.Position(), target.Point())

	// Local flat-earth step; fine at the scale of survey routes.
	headingRad := st.Heading * math.Pi / 180
	latRad := st.Lat * math.Pi / 180
	st.Lat += traveled * math.Cos(headingRad) / NMPerDegree
	st.Lon += traveled * math.Sin(headingRad) / (NMPerDegree * math.Cos(latRad))

	st.AreaCovered += traveled * AreaCoverageFactor * st.SpeedKnots
}
