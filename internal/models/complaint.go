package models

const (
	ComplaintOpen     = "open"
	ComplaintResolved = "resolved"
)

var ComplaintTypes = []string{
	"missed_collection",
	"overflowing_bins",
	"improper_disposal",
	"vehicle_issues",
	"facility_problems",
	"other",
}

type Complaint struct {
	ID            string   `json:"id" db:"id"`
	UserID        string   `json:"user_id" db:"user_id"`
	ComplaintType string   `json:"complaint_type" db:"complaint_type"`
	Description   string   `json:"description" db:"description"`
	Location      string   `json:"location" db:"location"`
	Latitude      *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude     *float64 `json:"longitude,omitempty" db:"longitude"`
	PhotoURL      *string  `json:"photo_url,omitempty" db:"photo_url"`
	Status        string   `json:"status" db:"status"`
	CreatedAt     int64    `json:"created_at" db:"created_at"`
	ResolvedAt    *int64   `json:"resolved_at,omitempty" db:"resolved_at"`
	ResolvedBy    *string  `json:"resolved_by,omitempty" db:"resolved_by"`
}

// CreateComplaintRequest is the request body for POST /api/complaints
type CreateComplaintRequest struct {
	ComplaintType string   `json:"complaint_type"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PhotoURL      *string  `json:"photo_url,omitempty"` // Optional photo URL from the upload CDN
}
