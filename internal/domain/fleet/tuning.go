package fleet

const (
	MinSpeedMultiplier = 0.1
	MaxSpeedMultiplier = 10.0

	// Simulated seconds granted per tick at multiplier 1.0. Movement is
	// deliberately a function of tick count, not wall-clock elapsed time.
	BaseTickSeconds = 1.0

	// Waypoint arrival fires when distance drops below
	// ArrivalBaseThresholdNM + traveled*ArrivalTravelFactor. Scaling the
	// threshold with per-tick travel avoids overshoot at high multipliers.
	ArrivalBaseThresholdNM = 0.15
	ArrivalTravelFactor    = 1.5

	NMPerDegree = 60.0

	AreaCoverageFactor = 0.05

	// Battery drain per simulated second: EnergyDrainCoeff * (knots/10)^2.
	EnergyDrainCoeff = 0.008
	// Battery recovery per simulated second while charging (~5%/60s).
	EnergyChargeRate = 0.083

	LowEnergyThreshold     = 20.0
	ChargedEnergyThreshold = 75.0
)

const (
	stationKeepingSpeedText  = "0 knots (station keeping)"
	stationKeepingConditions = "Holding position, recharging batteries"
	underwayConditions       = "Underway, resuming survey pattern"
)
