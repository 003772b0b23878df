package fleet

import (
	"fmt"
	"math"

	"fleetsim/internal/domain/geo"
)

// AdvanceEnergy applies dt simulated seconds of battery drain or recovery
// and runs the Active/Charging transitions. At most one transition happens
// per call. Maintenance vessels must be skipped by the caller; the function
// treats them as a no-op anyway.
func AdvanceEnergy(st *VesselState, route Route, dt float64) {
	switch st.Status {
	case StatusActive:
		drain := EnergyDrainCoeff * math.Pow(st.SpeedKnots/10, 2) * dt
		st.EnergyLevel = clampEnergy(st.EnergyLevel - drain)
		if st.EnergyLevel < LowEnergyThreshold {
			st.Status = StatusCharging
			st.SpeedKnots = 0
			st.SpeedDescription = stationKeepingSpeedText
			st.Conditions = stationKeepingConditions
		}

	case StatusCharging:
		st.SpeedKnots = 0
		st.EnergyLevel = clampEnergy(st.EnergyLevel + EnergyChargeRate*dt)
		if st.EnergyLevel >= ChargedEnergyThreshold {
			st.Status = StatusActive
			st.SpeedKnots = st.OriginalSpeedKnots
			if len(route) > 1 {
				st.Heading = geo.BearingDeg(st.Position(), route[st.WaypointIndex].Point())
			}
			st.SpeedDescription = SpeedText(st.SpeedKnots)
			st.Conditions = underwayConditions
		}

	case StatusMaintenance:
	}
}

// SpeedText renders a cruising speed for the human-readable status field.
func SpeedText(knots float64) string {
	return fmt.Sprintf("%.1f knots", knots)
}

func clampEnergy(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
