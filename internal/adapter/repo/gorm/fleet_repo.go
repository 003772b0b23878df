package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"fleetsim/internal/adapter/repo/gorm/model"
	"fleetsim/internal/app/ports"
	"fleetsim/internal/domain/fleet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FleetRepo struct {
	db *gorm.DB
}

func NewFleetRepo(db *gorm.DB) FleetRepo {
	return FleetRepo{db: db}
}

func (r FleetRepo) GetAllWithStates(ctx context.Context) ([]fleet.VesselWithState, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	var vessels []model.Vessel
	if err := db.Order("id").Find(&vessels).Error; err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}
	var states []model.VesselState
	if err := db.Find(&states).Error; err != nil {
		return nil, fmt.Errorf("list vessel states: %w", err)
	}

	byID := make(map[string]model.VesselState, len(states))
	for _, st := range states {
		byID[st.VesselID] = st
	}

	out := make([]fleet.VesselWithState, 0, len(vessels))
	for _, v := range vessels {
		st, ok := byID[v.ID]
		if !ok {
			return nil, fmt.Errorf("vessel %s has no state row", v.ID)
		}
		out = append(out, fleet.VesselWithState{
			Vessel: vesselFromModel(v),
			State:  stateFromModel(st),
		})
	}
	return out, nil
}

func (r FleetRepo) GetByID(ctx context.Context, id string) (fleet.VesselWithState, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	var v model.Vessel
	if err := db.Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fleet.VesselWithState{}, ports.ErrNotFound
		}
		return fleet.VesselWithState{}, fmt.Errorf("get vessel %s: %w", id, err)
	}
	var st model.VesselState
	if err := db.Where("vessel_id = ?", id).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fleet.VesselWithState{}, ports.ErrNotFound
		}
		return fleet.VesselWithState{}, fmt.Errorf("get vessel state %s: %w", id, err)
	}
	return fleet.VesselWithState{Vessel: vesselFromModel(v), State: stateFromModel(st)}, nil
}

func (r FleetRepo) Routes(ctx context.Context) (map[string]fleet.Route, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	var rows []model.Waypoint
	if err := db.Order("vessel_id, seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list waypoints: %w", err)
	}
	out := make(map[string]fleet.Route)
	for _, w := range rows {
		out[w.VesselID] = append(out[w.VesselID], fleet.Waypoint{
			Lat: w.Lat,
			Lon: w.Lon,
			Seq: int(w.Seq),
		})
	}
	return out, nil
}

func (r FleetRepo) UpdateState(ctx context.Context, st fleet.VesselState) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vessel_id"}},
		UpdateAll: true,
	}).Create(stateToModel(st))
	if res.Error != nil {
		return fmt.Errorf("upsert state %s: %w", st.VesselID, res.Error)
	}
	return nil
}

func (r FleetRepo) ReplaceAllStates(ctx context.Context, states []fleet.VesselState) (int, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	for _, st := range states {
		res := db.Model(&model.VesselState{}).
			Where("vessel_id = ?", st.VesselID).
			Select("*").Omit("vessel_id").
			Updates(stateToModel(st))
		if res.Error != nil {
			return 0, fmt.Errorf("reset state %s: %w", st.VesselID, res.Error)
		}
		if res.RowsAffected == 0 {
			return 0, ports.ErrNotFound
		}
	}
	return len(states), nil
}

func (r FleetRepo) SeedFleet(ctx context.Context, seeds []fleet.SeedVessel) error {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	var count int64
	if err := db.Model(&model.Vessel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count vessels: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seeds {
			v := model.Vessel{
				ID:         s.Vessel.ID,
				Name:       s.Vessel.Name,
				CrewCount:  int32(s.Vessel.CrewCount),
				Equipment:  s.Vessel.Equipment,
				Project:    s.Vessel.Project,
				SurveyType: s.Vessel.SurveyType,
			}
			if err := tx.Create(&v).Error; err != nil {
				return fmt.Errorf("seed vessel %s: %w", s.Vessel.ID, err)
			}
			for _, wp := range s.Route {
				w := model.Waypoint{
					VesselID: s.Vessel.ID,
					Seq:      int32(wp.Seq),
					Lat:      wp.Lat,
					Lon:      wp.Lon,
				}
				if err := tx.Create(&w).Error; err != nil {
					return fmt.Errorf("seed waypoint %s/%d: %w", s.Vessel.ID, wp.Seq, err)
				}
			}
			if err := tx.Create(stateToModel(s.InitialState)).Error; err != nil {
				return fmt.Errorf("seed state %s: %w", s.Vessel.ID, err)
			}
		}
		return nil
	})
}

func vesselFromModel(v model.Vessel) fleet.Vessel {
	return fleet.Vessel{
		ID:         v.ID,
		Name:       v.Name,
		CrewCount:  int(v.CrewCount),
		Equipment:  v.Equipment,
		Project:    v.Project,
		SurveyType: v.SurveyType,
	}
}

func stateFromModel(m model.VesselState) fleet.VesselState {
	return fleet.VesselState{
		VesselID:           m.VesselID,
		Lat:                m.Lat,
		Lon:                m.Lon,
		Heading:            m.Heading,
		SpeedKnots:         m.SpeedKnots,
		OriginalSpeedKnots: m.OriginalSpeedKnots,
		EnergyLevel:        m.EnergyLevel,
		Status:             fleet.Status(m.Status),
		SpeedDescription:   m.SpeedDescription,
		Conditions:         m.Conditions,
		AreaCovered:        m.AreaCovered,
		WaypointIndex:      int(m.WaypointIndex),
		UpdatedAt:          m.UpdatedAt,
	}
}

func stateToModel(st fleet.VesselState) *model.VesselState {
	return &model.VesselState{
		VesselID:           st.VesselID,
		Lat:                st.Lat,
		Lon:                st.Lon,
		Heading:            st.Heading,
		SpeedKnots:         st.SpeedKnots,
		OriginalSpeedKnots: st.OriginalSpeedKnots,
		EnergyLevel:        st.EnergyLevel,
		Status:             string(st.Status),
		SpeedDescription:   st.SpeedDescription,
		Conditions:         st.Conditions,
		AreaCovered:        st.AreaCovered,
		WaypointIndex:      int32(st.WaypointIndex),
		UpdatedAt:          st.UpdatedAt,
	}
}

var _ ports.FleetRepository = FleetRepo{}
