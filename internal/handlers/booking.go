package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/swifttransit/booking-api/internal/db"
	"github.com/swifttransit/booking-api/internal/events"
	"github.com/swifttransit/booking-api/internal/middleware"
	"github.com/swifttransit/booking-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingHandler handles booking creation, listing, search and status updates
type BookingHandler struct {
	users     db.UserCollection
	bookings  db.BookingCollection
	publisher events.Publisher
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(users db.UserCollection, bookings db.BookingCollection, publisher events.Publisher) *BookingHandler {
	return &BookingHandler{
		users:     users,
		bookings:  bookings,
		publisher: publisher,
	}
}

// Create creates a booking owned by the calling customer. The caller's name
// and phone are copied onto the record at creation time.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Origin == "" || req.Destination == "" {
		writeError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}

	customer, err := h.users.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "customer account not found")
			return
		}
		writeStoreError(w, "find customer", err)
		return
	}

	booking := models.Booking{
		ID:            primitive.NewObjectID(),
		CustomerID:    customer.ID.Hex(),
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		VehicleID:     req.VehicleID,
		VehicleType:   req.VehicleType,
		Origin:        req.Origin,
		Destination:   req.Destination,
		TravelDate:    req.TravelDate,
		Amount:        req.Amount,
		Status:        models.BookingPending,
		CreatedAt:     time.Now(),
	}

	if err := h.bookings.InsertBooking(r.Context(), booking); err != nil {
		writeStoreError(w, "insert booking", err)
		return
	}

	h.publisher.BookingCreated(booking)

	writeJSON(w, http.StatusCreated, booking)
}

// MyBookings returns all bookings created by the calling customer
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	bookings, err := h.bookings.FindBookingsByCustomer(r.Context(), claims.UserID)
	if err != nil {
		writeStoreError(w, "find bookings by customer", err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// All returns every booking, unfiltered. Admin and director only.
func (h *BookingHandler) All(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.FindAllBookings(r.Context())
	if err != nil {
		writeStoreError(w, "find all bookings", err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// UpdateStatus overwrites the status of the given booking. Any known status
// may replace any other; there is no transition table.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if !models.IsValidBookingStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid booking status")
		return
	}

	if err := h.bookings.UpdateBookingStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "booking not found")
			return
		}
		writeStoreError(w, "update booking status", err)
		return
	}

	h.publisher.BookingStatusChanged(id, req.Status)

	writeMessage(w, http.StatusOK, "booking status updated")
}

// Search returns all bookings whose denormalized customer phone matches the
// path parameter exactly.
func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request) {
	phone := r.PathValue("phone")

	bookings, err := h.bookings.FindBookingsByPhone(r.Context(), phone)
	if err != nil {
		writeStoreError(w, "find bookings by phone", err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// Revenue reports the count and summed amount of completed bookings.
func (h *BookingHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	completed, err := h.bookings.FindCompletedBookings(r.Context())
	if err != nil {
		writeStoreError(w, "find completed bookings", err)
		return
	}

	report := models.RevenueReport{TotalCompletedTrips: len(completed)}
	for _, b := range completed {
		report.TotalRevenue += b.Amount
	}

	writeJSON(w, http.StatusOK, report)
}
