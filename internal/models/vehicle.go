package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle statuses. The booking flow never sets these; they are managed
// independently through the vehicle endpoints.
const (
	VehicleAvailable   = "available"
	VehicleBooked      = "booked"
	VehicleMaintenance = "maintenance"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleNumber string             `bson:"vehicle_number" json:"vehicle_number"`
	Type          string             `bson:"type" json:"type"` // free-text category, e.g. "bus", "car", "van"
	Capacity      int                `bson:"capacity" json:"capacity"`
	DriverID      string             `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
