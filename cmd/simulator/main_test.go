package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPhone(t *testing.T) {
	for i := 0; i < 100; i++ {
		phone := randomPhone()
		assert.Len(t, phone, 10)
		assert.Equal(t, "99", phone[:2])
		for _, c := range phone {
			assert.True(t, c >= '0' && c <= '9', "phone must be all digits: %s", phone)
		}
	}
}

func TestRandomBooking(t *testing.T) {
	for i := 0; i < 100; i++ {
		booking := randomBooking()
		assert.NotEmpty(t, booking.Origin)
		assert.NotEmpty(t, booking.Destination)
		assert.NotEqual(t, booking.Origin, booking.Destination)
		assert.Contains(t, vehicleTypes, booking.VehicleType)
		assert.True(t, booking.TravelDate.After(time.Now()))
		assert.GreaterOrEqual(t, booking.Amount, 50.0)
		assert.Less(t, booking.Amount, 500.0)
	}
}

func TestRegisterCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/register":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"message": "customer account created"})
		case "/api/login":
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	customer, err := registerCustomer(server.URL)
	require.NoError(t, err)
	assert.Equal(t, "test-token", customer.Token)
	assert.NotEmpty(t, customer.Phone)
	assert.NotEmpty(t, customer.Name)
}

func TestPlaceBooking(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		var booking Booking
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(booking)
	}))
	defer server.Close()

	customer := &Customer{Phone: "9912345678", Token: "test-token"}
	err := placeBooking(server.URL, customer)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestPlaceBooking_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	customer := &Customer{Phone: "9912345678", Token: "stale"}
	err := placeBooking(server.URL, customer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
