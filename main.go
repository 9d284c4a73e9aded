package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/routes"
	"rental-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Initialize services
	propertyService := services.NewPropertyService(db)
	availabilityService := services.NewAvailabilityService(db)
	availabilityQuery := services.NewAvailabilityQuery(availabilityService)
	pricingService := services.NewPricingService(db)
	reservationService := services.NewReservationService(db, pricingService, availabilityService)
	calendarSyncService := services.NewCalendarSyncService(db, availabilityService)

	// Initialize controllers
	propertyController := controllers.NewPropertyController(propertyService)
	reservationController := controllers.NewReservationController(reservationService)
	availabilityController := controllers.NewAvailabilityController(availabilityService, availabilityQuery)
	pricingController := controllers.NewPricingController(pricingService, propertyService)
	calendarController := controllers.NewCalendarController(calendarSyncService)

	router := routes.SetupRouter(
		propertyController,
		reservationController,
		availabilityController,
		pricingController,
		calendarController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
