package db

import (
	"context"
	"time"

	"github.com/swifttransit/booking-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingCollection defines the interface for booking database operations
type BookingCollection interface {
	InsertBooking(ctx context.Context, booking models.Booking) error
	FindBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	FindBookingsByPhone(ctx context.Context, phone string) ([]models.Booking, error)
	FindAllBookings(ctx context.Context) ([]models.Booking, error)
	FindCompletedBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
}

// MongoBookingCollection implements BookingCollection for MongoDB
type MongoBookingCollection struct {
	Collection *mongo.Collection
}

// InsertBooking inserts a booking record into the collection.
func (c *MongoBookingCollection) InsertBooking(ctx context.Context, booking models.Booking) error {
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, booking)
	return err
}

func (c *MongoBookingCollection) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindBookingsByCustomer returns all bookings created by the given customer.
func (c *MongoBookingCollection) FindBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return c.findBookings(ctx, bson.M{"customer_id": customerID})
}

// FindBookingsByPhone returns all bookings whose denormalized customer phone
// matches exactly.
func (c *MongoBookingCollection) FindBookingsByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	return c.findBookings(ctx, bson.M{"customer_phone": phone})
}

// FindAllBookings returns every booking, unfiltered.
func (c *MongoBookingCollection) FindAllBookings(ctx context.Context) ([]models.Booking, error) {
	return c.findBookings(ctx, bson.M{})
}

// FindCompletedBookings returns every booking with status "completed".
func (c *MongoBookingCollection) FindCompletedBookings(ctx context.Context) ([]models.Booking, error) {
	return c.findBookings(ctx, bson.M{"status": models.BookingCompleted})
}

// UpdateBookingStatus overwrites only the status field of the given booking.
func (c *MongoBookingCollection) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
