package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/swifttransit/booking-api/internal/db"
	"github.com/swifttransit/booking-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleHandler handles fleet management. Director only.
type VehicleHandler struct {
	users    db.UserCollection
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(users db.UserCollection, vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{
		users:    users,
		vehicles: vehicles,
	}
}

// Add creates a vehicle from the request payload.
func (h *VehicleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if vehicle.VehicleNumber == "" {
		writeError(w, http.StatusBadRequest, "vehicle number is required")
		return
	}

	// A driver reference must point to an existing user.
	if vehicle.DriverID != "" {
		if _, err := h.users.FindUserByID(r.Context(), vehicle.DriverID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusBadRequest, "assigned driver not found")
				return
			}
			writeStoreError(w, "find driver", err)
			return
		}
	}

	if vehicle.Status == "" {
		vehicle.Status = models.VehicleAvailable
	}
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()

	if err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		writeStoreError(w, "insert vehicle", err)
		return
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

// Update overwrites the supplied fields on the vehicle verbatim; fields not
// present in the payload are left untouched.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	delete(fields, "_id")
	delete(fields, "id")
	delete(fields, "created_at")

	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if driverID, ok := fields["driver_id"].(string); ok && driverID != "" {
		if _, err := h.users.FindUserByID(r.Context(), driverID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusBadRequest, "assigned driver not found")
				return
			}
			writeStoreError(w, "find driver", err)
			return
		}
	}

	if err := h.vehicles.UpdateVehicleFields(r.Context(), id, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "vehicle not found")
			return
		}
		writeStoreError(w, "update vehicle", err)
		return
	}

	writeMessage(w, http.StatusOK, "vehicle updated")
}

// List returns every vehicle, unfiltered.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindAllVehicles(r.Context())
	if err != nil {
		writeStoreError(w, "find all vehicles", err)
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}
