package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/swifttransit/booking-api/internal/db"
	"github.com/swifttransit/booking-api/internal/models"
)

// UserHandler handles user administration. Director only.
type UserHandler struct {
	users db.UserCollection
}

// NewUserHandler creates a new user administration handler
func NewUserHandler(users db.UserCollection) *UserHandler {
	return &UserHandler{users: users}
}

// List returns a paginated, searchable, optionally role-filtered user listing,
// newest first. Query params: page (default 1), limit (default 25), search
// (case-insensitive substring on name or phone), role.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := int64(1)
	if v, err := strconv.ParseInt(query.Get("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	limit := int64(25)
	if v, err := strconv.ParseInt(query.Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}

	search := query.Get("search")
	role := models.Role(query.Get("role"))
	if role != "" && !models.IsValidRole(role) {
		writeError(w, http.StatusBadRequest, "invalid role filter")
		return
	}

	result, err := h.users.ListUsers(r.Context(), page, limit, search, role)
	if err != nil {
		writeStoreError(w, "list users", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ToggleActive flips the active flag on the given user.
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.users.FindUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "user not found")
			return
		}
		writeStoreError(w, "find user", err)
		return
	}

	// Read-modify-write without locking; concurrent toggles are last-writer-wins.
	if err := h.users.SetActive(r.Context(), id, !user.IsActive); err != nil {
		writeStoreError(w, "set user active flag", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "user active flag updated",
		"is_active": !user.IsActive,
	})
}
