package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Customer holds the credentials and token of a simulated customer account.
type Customer struct {
	Phone    string
	Name     string
	Password string
	Token    string
}

// Booking mirrors the API's booking submission payload.
type Booking struct {
	VehicleType string    `json:"vehicle_type"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	TravelDate  time.Time `json:"travel_date"`
	Amount      float64   `json:"amount"`
}

var cities = []string{
	"London", "Manchester", "Birmingham", "Leeds", "Glasgow",
	"Liverpool", "Bristol", "Sheffield", "Edinburgh", "Cardiff",
	"Newcastle", "Nottingham", "Brighton", "Oxford", "Cambridge",
}

var vehicleTypes = []string{"bus", "car", "van"}

var firstNames = []string{"Arjun", "Maria", "James", "Fatima", "Wei", "Elena", "Tom", "Priya", "Noah", "Aisha"}
var lastNames = []string{"Smith", "Patel", "Garcia", "Khan", "Chen", "Brown", "Singh", "Jones", "Ali", "Taylor"}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func postJSON(url, token string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return httpClient.Do(req)
}

func randomPhone() string {
	// 10-digit numbers in a reserved-looking range so runs don't collide
	// with real data.
	return fmt.Sprintf("99%08d", rand.Intn(100000000))
}

func registerCustomer(apiURL string) (*Customer, error) {
	customer := &Customer{
		Phone:    randomPhone(),
		Name:     firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))],
		Password: "simulator-pass-" + strconv.Itoa(rand.Intn(10000)),
	}

	resp, err := postJSON(apiURL+"/api/register", "", map[string]string{
		"phone":    customer.Phone,
		"name":     customer.Name,
		"password": customer.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("registration failed with status %d", resp.StatusCode)
	}

	resp, err = postJSON(apiURL+"/api/login", "", map[string]string{
		"phone":    customer.Phone,
		"password": customer.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if result.Token == "" {
		return nil, fmt.Errorf("no token in login response")
	}

	customer.Token = result.Token
	return customer, nil
}

func randomBooking() Booking {
	origin := cities[rand.Intn(len(cities))]
	destination := cities[rand.Intn(len(cities))]
	for destination == origin {
		destination = cities[rand.Intn(len(cities))]
	}

	return Booking{
		VehicleType: vehicleTypes[rand.Intn(len(vehicleTypes))],
		Origin:      origin,
		Destination: destination,
		TravelDate:  time.Now().AddDate(0, 0, 1+rand.Intn(30)),
		Amount:      float64(50 + rand.Intn(450)),
	}
}

func placeBooking(apiURL string, customer *Customer) error {
	booking := randomBooking()
	resp, err := postJSON(apiURL+"/api/bookings", customer.Token, booking)
	if err != nil {
		return fmt.Errorf("booking request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("booking failed with status %d", resp.StatusCode)
	}

	log.WithFields(log.Fields{
		"customer":    customer.Phone,
		"origin":      booking.Origin,
		"destination": booking.Destination,
		"amount":      booking.Amount,
	}).Info("booking placed")
	return nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	numCustomers := 5
	if v, err := strconv.Atoi(os.Getenv("NUM_CUSTOMERS")); err == nil && v > 0 {
		numCustomers = v
	}

	interval := 5 * time.Second
	if v, err := time.ParseDuration(os.Getenv("BOOKING_INTERVAL")); err == nil {
		interval = v
	}

	log.WithFields(log.Fields{
		"api_url":   apiURL,
		"customers": numCustomers,
		"interval":  interval,
	}).Info("starting booking simulator")

	customers := make([]*Customer, 0, numCustomers)
	for i := 0; i < numCustomers; i++ {
		customer, err := registerCustomer(apiURL)
		if err != nil {
			log.WithError(err).Error("failed to set up customer")
			continue
		}
		log.WithField("phone", customer.Phone).Info("customer registered")
		customers = append(customers, customer)
	}

	if len(customers) == 0 {
		log.Fatal("no customers could be registered, exiting")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		customer := customers[rand.Intn(len(customers))]
		if err := placeBooking(apiURL, customer); err != nil {
			log.WithError(err).Warn("booking attempt failed")
		}
	}
}
