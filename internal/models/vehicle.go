package models

import "time"

const (
	VehicleIdle        = "idle"
	VehicleCollecting  = "collecting"
	VehicleInTransit   = "in_transit"
	VehicleMaintenance = "maintenance"
)

type Vehicle struct {
	ID            string  `json:"id" db:"id"`
	VehicleNumber string  `json:"vehicle_number" db:"vehicle_number"`
	VehicleType   string  `json:"vehicle_type" db:"vehicle_type"`
	CapacityTons  float64 `json:"capacity_tons" db:"capacity_tons"`
	Latitude      float64 `json:"latitude" db:"latitude"`
	Longitude     float64 `json:"longitude" db:"longitude"`
	DriverName    string  `json:"driver_name" db:"driver_name"`
	DriverPhone   string  `json:"driver_phone" db:"driver_phone"`
	Status        string  `json:"status" db:"status"`
	LastUpdated   int64   `json:"last_updated" db:"last_updated"`
}

// VehicleResponse is what we send to the client with ISO timestamps
type VehicleResponse struct {
	ID             string  `json:"id"`
	VehicleNumber  string  `json:"vehicle_number"`
	VehicleType    string  `json:"vehicle_type"`
	CapacityTons   float64 `json:"capacity_tons"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DriverName     string  `json:"driver_name"`
	DriverPhone    string  `json:"driver_phone"`
	Status         string  `json:"status"`
	LastUpdatedIso string  `json:"lastUpdatedIso"`
}

func (v *Vehicle) ToVehicleResponse() VehicleResponse {
	return VehicleResponse{
		ID:             v.ID,
		VehicleNumber:  v.VehicleNumber,
		VehicleType:    v.VehicleType,
		CapacityTons:   v.CapacityTons,
		Latitude:       v.Latitude,
		Longitude:      v.Longitude,
		DriverName:     v.DriverName,
		DriverPhone:    v.DriverPhone,
		Status:         v.Status,
		LastUpdatedIso: time.Unix(v.LastUpdated, 0).Format(time.RFC3339),
	}
}

// CreateVehicleRequest is the request body for POST /api/vehicles
type CreateVehicleRequest struct {
	VehicleNumber string  `json:"vehicle_number"`
	VehicleType   string  `json:"vehicle_type"`
	CapacityTons  float64 `json:"capacity_tons"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DriverName    string  `json:"driver_name"`
	DriverPhone   string  `json:"driver_phone"`
}

// UpdateVehicleLocationRequest is the request body for PATCH /api/vehicles/:id/location
type UpdateVehicleLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
}
