package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"wastetrack-backend/internal/models"
	"wastetrack-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "worker" or "admin"
	Ward     string `json:"ward"`
}

// GetUsers lists accounts for the admin console, optionally filtered by
// role and ward
func GetUsers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := "SELECT * FROM users WHERE 1=1"
		args := []interface{}{}

		if role := r.URL.Query().Get("role"); role != "" {
			query += " AND role = ?"
			args = append(args, role)
		}
		if ward := r.URL.Query().Get("ward"); ward != "" {
			query += " AND ward = ?"
			args = append(args, ward)
		}
		query += " ORDER BY created_at DESC"

		var users []models.User
		if err := db.Select(&users, query, args...); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		responses := make([]models.UserResponse, len(users))
		for i, u := range users {
			responses[i] = u.ToUserResponse()
		}

		utils.RespondJSON(w, http.StatusOK, responses)
	}
}

// CreateUser provisions a worker or admin account. Citizens register
// themselves through the public endpoint instead.
func CreateUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" || req.Role == "" {
			utils.RespondError(w, http.StatusBadRequest, "Username, email, password, full name, and role are required")
			return
		}

		validRoles := map[string]bool{"worker": true, "admin": true}
		if !validRoles[req.Role] {
			utils.RespondError(w, http.StatusBadRequest, "Role must be 'worker' or 'admin'")
			return
		}

		var exists int
		if err := db.Get(&exists, "SELECT COUNT(*) FROM users WHERE username = ? OR email = ?", req.Username, req.Email); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if exists > 0 {
			utils.RespondError(w, http.StatusConflict, "Username or email already exists")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		now := time.Now().Unix()
		user := models.User{
			ID:        uuid.New().String(),
			Username:  req.Username,
			Email:     req.Email,
			Password:  string(hashedPassword),
			FullName:  req.FullName,
			Phone:     req.Phone,
			Role:      req.Role,
			Ward:      req.Ward,
			WasteID:   newWasteID(),
			CreatedAt: now,
			UpdatedAt: now,
		}

		_, err = db.NamedExec(`
			INSERT INTO users (id, username, email, password, full_name, phone, address, role, ward, waste_id, points, created_at, updated_at)
			VALUES (:id, :username, :email, :password, :full_name, :phone, :address, :role, :ward, :waste_id, 0, :created_at, :updated_at)
		`, user)
		if isUniqueViolation(err) {
			utils.RespondError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		log.Printf("✅ Created %s account: %s", user.Role, user.Username)

		userResponse := user.ToUserResponse()
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"user":    userResponse,
		})
	}
}
