package models

var FacilityTypes = []string{"recycling_center", "composting", "e_waste", "wte_plant"}

type Facility struct {
	ID               string  `json:"id" db:"id"`
	Name             string  `json:"name" db:"name"`
	FacilityType     string  `json:"facility_type" db:"facility_type"`
	Address          string  `json:"address" db:"address"`
	Latitude         float64 `json:"latitude" db:"latitude"`
	Longitude        float64 `json:"longitude" db:"longitude"`
	CapacityTpd      float64 `json:"capacity_tpd" db:"capacity_tpd"`
	ContactNumber    string  `json:"contact_number" db:"contact_number"`
	OperationalHours string  `json:"operational_hours" db:"operational_hours"`
}

// CreateFacilityRequest is the request body for POST /api/facilities
type CreateFacilityRequest struct {
	Name             string  `json:"name"`
	FacilityType     string  `json:"facility_type"`
	Address          string  `json:"address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	CapacityTpd      float64 `json:"capacity_tpd"`
	ContactNumber    string  `json:"contact_number"`
	OperationalHours string  `json:"operational_hours"`
}
