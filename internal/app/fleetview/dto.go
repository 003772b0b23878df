package fleetview

import "fleetsim/internal/domain/fleet"

// VesselStatus is the wire shape served to the visualization frontend.
type VesselStatus struct {
	ID          string  `json:"id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Status      string  `json:"status"`
	EnergyLevel float64 `json:"energyLevel"`
	VesselName  string  `json:"vesselName"`
	SurveyType  string  `json:"surveyType"`
	Project     string  `json:"project"`
	Equipment   string  `json:"equipment"`
	AreaCovered float64 `json:"areaCovered"`
	Speed       string  `json:"speed"`
	CrewCount   int     `json:"crewCount"`
	Conditions  string  `json:"conditions"`
	Heading     float64 `json:"heading"`
}

// StatusFromVessel flattens a metadata+state join into the wire shape.
func StatusFromVessel(v fleet.VesselWithState) VesselStatus {
	return VesselStatus{
		ID:          v.Vessel.ID,
		Latitude:    v.State.Lat,
		Longitude:   v.State.Lon,
		Status:      string(v.State.Status),
		EnergyLevel: v.State.EnergyLevel,
		VesselName:  v.Vessel.Name,
		SurveyType:  v.Vessel.SurveyType,
		Project:     v.Vessel.Project,
		Equipment:   v.Vessel.Equipment,
		AreaCovered: v.State.AreaCovered,
		Speed:       v.State.SpeedDescription,
		CrewCount:   v.Vessel.CrewCount,
		Conditions:  v.State.Conditions,
		Heading:     v.State.Heading,
	}
}

// FleetStatuses maps a whole snapshot, preserving order.
func FleetStatuses(rows []fleet.VesselWithState) []VesselStatus {
	out := make([]VesselStatus, len(rows))
	for i, v := range rows {
		out[i] = StatusFromVessel(v)
	}
	return out
}
