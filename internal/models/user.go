package models

type User struct {
	ID                string `json:"id" db:"id"`
	Username          string `json:"username" db:"username"`
	Email             string `json:"email" db:"email"`
	Password          string `json:"-" db:"password"` // Never return password in JSON
	FullName          string `json:"full_name" db:"full_name"`
	Phone             string `json:"phone" db:"phone"`
	Address           string `json:"address" db:"address"`
	Role              string `json:"role" db:"role"` // "citizen", "worker" or "admin"
	Ward              string `json:"ward" db:"ward"`
	WasteID           string `json:"waste_id" db:"waste_id"`
	TrainingCompleted bool   `json:"training_completed" db:"training_completed"`
	Points            int    `json:"points" db:"points"`
	CreatedAt         int64  `json:"created_at" db:"created_at"`
	UpdatedAt         int64  `json:"updated_at" db:"updated_at"`
}

type UserResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	Role              string `json:"role"`
	Ward              string `json:"ward"`
	WasteID           string `json:"waste_id"`
	TrainingCompleted bool   `json:"training_completed"`
	Points            int    `json:"points"`
	CreatedAt         int64  `json:"created_at"`
}

func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FullName:          u.FullName,
		Phone:             u.Phone,
		Address:           u.Address,
		Role:              u.Role,
		Ward:              u.Ward,
		WasteID:           u.WasteID,
		TrainingCompleted: u.TrainingCompleted,
		Points:            u.Points,
		CreatedAt:         u.CreatedAt,
	}
}
