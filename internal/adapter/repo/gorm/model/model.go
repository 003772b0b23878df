package model

import "time"

type Vessel struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	CrewCount  int32
	Equipment  string
	Project    string
	SurveyType string
}

func (Vessel) TableName() string { return "vessels" }

type VesselState struct {
	VesselID           string `gorm:"primaryKey"`
	Lat                float64
	Lon                float64
	Heading            float64
	SpeedKnots         float64
	OriginalSpeedKnots float64
	EnergyLevel        float64
	Status             string
	SpeedDescription   string
	Conditions         string
	AreaCovered        float64
	WaypointIndex      int32
	UpdatedAt          time.Time
}

func (VesselState) TableName() string { return "vessel_states" }

type Waypoint struct {
	VesselID string `gorm:"primaryKey"`
	Seq      int32  `gorm:"primaryKey"`
	Lat      float64
	Lon      float64
}

func (Waypoint) TableName() string { return "waypoints" }
