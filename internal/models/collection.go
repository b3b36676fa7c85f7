package models

import "time"

// Collection statuses move forward only: scheduled -> collected -> processed.
const (
	CollectionScheduled = "scheduled"
	CollectionCollected = "collected"
	CollectionProcessed = "processed"
)

var WasteTypes = []string{"wet", "dry", "hazardous", "e_waste"}

type Collection struct {
	ID             string   `json:"id" db:"id"`
	UserID         string   `json:"user_id" db:"user_id"`
	CollectionDate int64    `json:"collection_date" db:"collection_date"` // Unix timestamp
	WasteType      string   `json:"waste_type" db:"waste_type"`
	WeightKg       float64  `json:"weight_kg" db:"weight_kg"`
	Segregated     bool     `json:"segregated" db:"segregated"`
	CollectedBy    *string  `json:"collected_by,omitempty" db:"collected_by"`
	VehicleNumber  *string  `json:"vehicle_number,omitempty" db:"vehicle_number"`
	Status         string   `json:"status" db:"status"`
	Latitude       *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64 `json:"longitude,omitempty" db:"longitude"`
	CreatedAt      int64    `json:"created_at" db:"created_at"`
	UpdatedAt      int64    `json:"updated_at" db:"updated_at"`
}

// CollectionResponse is what we send to the client with ISO timestamps
type CollectionResponse struct {
	ID                string   `json:"id"`
	UserID            string   `json:"user_id"`
	CollectionDateIso string   `json:"collectionDateIso"`
	WasteType         string   `json:"waste_type"`
	WeightKg          float64  `json:"weight_kg"`
	Segregated        bool     `json:"segregated"`
	CollectedBy       *string  `json:"collected_by,omitempty"`
	VehicleNumber     *string  `json:"vehicle_number,omitempty"`
	Status            string   `json:"status"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

func (c *Collection) ToCollectionResponse() CollectionResponse {
	return CollectionResponse{
		ID:                c.ID,
		UserID:            c.UserID,
		CollectionDateIso: time.Unix(c.CollectionDate, 0).Format(time.RFC3339),
		WasteType:         c.WasteType,
		WeightKg:          c.WeightKg,
		Segregated:        c.Segregated,
		CollectedBy:       c.CollectedBy,
		VehicleNumber:     c.VehicleNumber,
		Status:            c.Status,
		Latitude:          c.Latitude,
		Longitude:         c.Longitude,
	}
}

// ScheduleCollectionRequest is the request body for POST /api/collections
type ScheduleCollectionRequest struct {
	CollectionDateIso string   `json:"collectionDateIso"`
	WasteType         string   `json:"waste_type"`
	WeightKg          float64  `json:"weight_kg"`
	Segregated        bool     `json:"segregated"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// UpdateCollectionStatusRequest is the request body for PATCH /api/collections/:id/status
type UpdateCollectionStatusRequest struct {
	Status        string `json:"status"`
	VehicleNumber string `json:"vehicle_number"`
}

// WorkerCollection joins a collection with the citizen it belongs to
type WorkerCollection struct {
	Collection
	FullName string `json:"full_name" db:"full_name"`
	Address  string `json:"address" db:"address"`
	Phone    string `json:"phone" db:"phone"`
	Ward     string `json:"ward" db:"ward"`
}
