package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/swifttransit/booking-api/internal/auth"
	"github.com/swifttransit/booking-api/internal/db"
	"github.com/swifttransit/booking-api/internal/events"
	"github.com/swifttransit/booking-api/internal/handlers"
	"github.com/swifttransit/booking-api/internal/middleware"
	"github.com/swifttransit/booking-api/internal/models"
)

func main() {
	godotenv.Load()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "transit"
	}
	store := db.NewStore(client, dbName)
	log.WithField("database", dbName).Info("connected to MongoDB")

	var publisher events.Publisher = events.NoopPublisher{}
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(broker)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to MQTT broker")
		}
		publisher = mqttPublisher
		log.WithField("broker", broker).Info("booking events enabled")
	}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	authMW := middleware.NewAuthMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, store.Users)
	bookingHandler := handlers.NewBookingHandler(store.Users, store.Bookings, publisher)
	vehicleHandler := handlers.NewVehicleHandler(store.Users, store.Vehicles)
	userHandler := handlers.NewUserHandler(store.Users)

	// Every protected route runs Authenticate, then the role check, then the
	// handler; a guard failure terminates the request.
	protect := func(handler http.HandlerFunc, roles ...models.Role) http.Handler {
		return authMW.Authenticate(authMW.RequireRole(roles...)(handler))
	}

	staff := []models.Role{models.RoleAdmin, models.RoleDirector}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)

	mux.Handle("POST /api/bookings", protect(bookingHandler.Create, models.RoleCustomer))
	mux.Handle("GET /api/bookings/my", protect(bookingHandler.MyBookings, models.RoleCustomer))

	mux.Handle("GET /api/admin/bookings", protect(bookingHandler.All, staff...))
	mux.Handle("PUT /api/admin/bookings/{id}/status", protect(bookingHandler.UpdateStatus, staff...))
	mux.Handle("GET /api/admin/bookings/search/{phone}", protect(bookingHandler.Search, staff...))

	mux.Handle("POST /api/director/admins", protect(authHandler.CreateAdmin, models.RoleDirector))
	mux.Handle("POST /api/director/drivers", protect(authHandler.CreateDriver, models.RoleDirector))
	mux.Handle("POST /api/director/vehicles", protect(vehicleHandler.Add, models.RoleDirector))
	mux.Handle("PUT /api/director/vehicles/{id}", protect(vehicleHandler.Update, models.RoleDirector))
	mux.Handle("GET /api/director/vehicles", protect(vehicleHandler.List, models.RoleDirector))
	mux.Handle("GET /api/director/revenue", protect(bookingHandler.Revenue, models.RoleDirector))
	mux.Handle("GET /api/director/users", protect(userHandler.List, models.RoleDirector))
	mux.Handle("PUT /api/director/users/{id}/toggle", protect(userHandler.ToggleActive, models.RoleDirector))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.WithField("port", port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}
	publisher.Close()
	if err := store.Close(ctx); err != nil {
		log.WithError(err).Error("mongo disconnect error")
	}
}
