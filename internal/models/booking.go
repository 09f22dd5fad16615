package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus represents the state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a single trip reservation. Customer name and phone are
// snapshots taken at creation time so admin search works without a join; they
// are never resynchronized if the user record changes.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    string             `bson:"customer_id" json:"customer_id"`
	CustomerName  string             `bson:"customer_name" json:"customer_name"`
	CustomerPhone string             `bson:"customer_phone" json:"customer_phone"`
	VehicleID     string             `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	VehicleType   string             `bson:"vehicle_type" json:"vehicle_type"`
	Origin        string             `bson:"origin" json:"origin"`
	Destination   string             `bson:"destination" json:"destination"`
	TravelDate    time.Time          `bson:"travel_date" json:"travel_date"`
	Amount        float64            `bson:"amount,omitempty" json:"amount"`
	Status        BookingStatus      `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// BookingRequest represents a customer's booking submission
type BookingRequest struct {
	VehicleID   string    `json:"vehicle_id,omitempty"`
	VehicleType string    `json:"vehicle_type"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	TravelDate  time.Time `json:"travel_date"`
	Amount      float64   `json:"amount"`
}

// RevenueReport summarizes completed bookings
type RevenueReport struct {
	TotalCompletedTrips int     `json:"total_completed_trips"`
	TotalRevenue        float64 `json:"total_revenue"`
}

// IsValidBookingStatus checks if a booking status is one of the known values
func IsValidBookingStatus(status BookingStatus) bool {
	switch status {
	case BookingPending, BookingApproved, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}
