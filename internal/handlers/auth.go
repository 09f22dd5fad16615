package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/swifttransit/booking-api/internal/auth"
	"github.com/swifttransit/booking-api/internal/db"
	"github.com/swifttransit/booking-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles registration, login and staff account creation
type AuthHandler struct {
	authService *auth.Service
	users       db.UserCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, users db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
	}
}

// Register handles customer self-registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, models.RoleCustomer)
}

// CreateAdmin creates an admin account. Director only; the role is forced.
func (h *AuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, models.RoleAdmin)
}

// CreateDriver creates a driver account. Director only; the role is forced.
func (h *AuthHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, models.RoleDriver)
}

// createUser runs the shared uniqueness-check + hash + insert flow with the
// role fixed by the calling endpoint.
func (h *AuthHandler) createUser(w http.ResponseWriter, r *http.Request, role models.Role) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.authService.ValidatePhone(req.Phone); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.authService.ValidateName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.authService.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Phone numbers are unique across all roles.
	_, err := h.users.FindUserByPhone(r.Context(), req.Phone)
	if err == nil {
		writeError(w, http.StatusBadRequest, "phone number already registered")
		return
	}
	if !errors.Is(err, db.ErrNotFound) {
		writeStoreError(w, "find user by phone", err)
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Phone:        req.Phone,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := h.users.InsertUser(r.Context(), user); err != nil {
		writeStoreError(w, "insert user", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": string(role) + " account created",
		"user":    user,
	})
}

// Login verifies credentials and issues a signed bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Phone == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "phone and password are required")
		return
	}

	user, err := h.users.FindUserByPhone(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, auth.ErrInvalidCredentials.Error())
			return
		}
		writeStoreError(w, "find user by phone", err)
		return
	}

	if !user.IsActive {
		writeError(w, http.StatusBadRequest, "account is deactivated")
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusBadRequest, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  *user,
	})
}
