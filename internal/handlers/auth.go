package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"wastetrack-backend/internal/middleware"
	"wastetrack-backend/internal/models"
	"wastetrack-backend/internal/services"
	"wastetrack-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Ward     string `json:"ward"`
}

// isUniqueViolation reports whether an insert failed on a UNIQUE
// constraint, which happens when two registrations race past the
// duplicate pre-check.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// newWasteID mints the citizen's permanent waste identifier, printed on
// their bin sticker and encoded in the QR card.
func newWasteID() string {
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("WG%d%s", time.Now().Year(), entropy[:8])
}

// Register creates a citizen account and credits the welcome bonus.
// The user row and the ledger entry commit in one transaction.
func Register(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
			utils.RespondError(w, http.StatusBadRequest, "Username, email, password, and full name are required")
			return
		}

		// Check if user already exists
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
			ID:       uuid.New().String(),
			Username: req.Username,
			Email:    req.Email,
			Password: string(hashedPassword),
			FullName: req.FullName,
			Phone:    req.Phone,
			Address:  req.Address,
			Role:     "citizen",
			Ward:     req.Ward,
			WasteID:  newWasteID(),
		}

		tx, err := db.Beginx()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to begin transaction")
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO users (id, username, email, password, full_name, phone, address, role, ward, waste_id, points, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
		`, user.ID, user.Username, user.Email, user.Password, user.FullName, user.Phone, user.Address, user.Role, user.Ward, user.WasteID, now, now)
		if isUniqueViolation(err) {
			utils.RespondError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		if err := services.AwardPoints(tx, user.ID, models.RewardWelcomeBonus, services.WelcomeBonusPoints, "Welcome bonus"); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to credit welcome bonus")
			return
		}

		if err := tx.Commit(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to commit transaction")
			return
		}

		log.Printf("✅ Registered citizen: %s (ward %s, waste ID %s)", user.Username, user.Ward, user.WasteID)

		user.Points = services.WelcomeBonusPoints
		userResponse := user.ToUserResponse()
		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"user":    userResponse,
		})
	}
}

// Login verifies credentials and issues a signed token. Unknown usernames
// and wrong passwords produce the same response so accounts cannot be
// enumerated.
func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			utils.RespondError(w, http.StatusInternalServerError, "Server misconfigured")
			return
		}

		var user models.User
		err := db.Get(&user, "SELECT * FROM users WHERE username = ?", req.Username)
		if err != nil {
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			utils.RespondJSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  user.ID,
			"username": user.Username,
			"role":     user.Role,
			"iat":      time.Now().Unix(),
			"exp":      time.Now().Add(7 * 24 * time.Hour).Unix(),
		})

		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		log.Printf("✅ Login successful: %s (%s)", user.Username, user.Role)

		userResponse := user.ToUserResponse()
		utils.RespondJSON(w, http.StatusOK, LoginResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

// GetAuthStatus echoes the authenticated identity with a fresh balance
func GetAuthStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		balance, err := services.PointsBalance(db, claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Database error")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":  claims.UserID,
			"username": claims.Username,
			"role":     claims.Role,
			"points":   balance,
		})
	}
}
