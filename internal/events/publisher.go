package events

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/swifttransit/booking-api/internal/models"
)

const bookingTopic = "bookings/events"

// Publisher emits booking lifecycle events for downstream consumers (dispatch
// screens, notifications). Publishing is fire-and-forget: a failed publish is
// logged, never surfaced to the API caller.
type Publisher interface {
	BookingCreated(booking models.Booking)
	BookingStatusChanged(bookingID string, status models.BookingStatus)
	Close()
}

type bookingEvent struct {
	Event     string               `json:"event"`
	BookingID string               `json:"booking_id"`
	Status    models.BookingStatus `json:"status,omitempty"`
	Booking   *models.Booking      `json:"booking,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// MQTTPublisher publishes booking events to an MQTT broker.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(broker string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("booking-api").
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTTPublisher{client: client}, nil
}

func (p *MQTTPublisher) publish(event bookingEvent) {
	event.Timestamp = time.Now()
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("failed to marshal booking event")
		return
	}
	token := p.client.Publish(bookingTopic, 0, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).WithField("event", event.Event).
				Error("failed to publish booking event")
		}
	}()
}

// BookingCreated publishes a booking-created event.
func (p *MQTTPublisher) BookingCreated(booking models.Booking) {
	p.publish(bookingEvent{
		Event:     "booking_created",
		BookingID: booking.ID.Hex(),
		Status:    booking.Status,
		Booking:   &booking,
	})
}

// BookingStatusChanged publishes a status-changed event.
func (p *MQTTPublisher) BookingStatusChanged(bookingID string, status models.BookingStatus) {
	p.publish(bookingEvent{
		Event:     "booking_status_changed",
		BookingID: bookingID,
		Status:    status,
	})
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(models.Booking)                     {}
func (NoopPublisher) BookingStatusChanged(string, models.BookingStatus) {}
func (NoopPublisher) Close()                                            {}
