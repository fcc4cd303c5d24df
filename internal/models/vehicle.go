package models

import "sort"

type Vehicle struct {
	VehicleID      string   `json:"vehicleId"`
	UnitNumber     string   `json:"unitNumber"`
	IsOutOfService bool     `json:"isOutOfService"`
	DisplayOrder   int      `json:"displayOrder"`
	Drivers        []string `json:"drivers"`
	Capabilities   []string `json:"capabilities"`
}

// SortVehiclesForGrid returns a copy ordered for column display: in-service
// vehicles first, then by display order.
func SortVehiclesForGrid(vehicles []Vehicle) []Vehicle {
	v := make([]Vehicle, len(vehicles))
	copy(v, vehicles)
	sort.SliceStable(v, func(i, j int) bool {
		if v[i].IsOutOfService != v[j].IsOutOfService {
			return !v[i].IsOutOfService
		}
		return v[i].DisplayOrder < v[j].DisplayOrder
	})
	return v
}
