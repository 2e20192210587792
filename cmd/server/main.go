package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ucube/wqi-forecast/internal/config"
	"github.com/ucube/wqi-forecast/internal/delivery/http"
	"github.com/ucube/wqi-forecast/internal/model"
	"github.com/ucube/wqi-forecast/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Model artifacts are required; never serve without them
	prophet, err := model.LoadProphet(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Error: could not load model from %s: %v", cfg.ModelPath, err)
	}
	encoder, err := model.LoadOneHotEncoder(cfg.EncoderPath)
	if err != nil {
		log.Fatalf("Error: could not load encoder from %s: %v", cfg.EncoderPath, err)
	}
	log.Printf("Loaded model (%d regressors) and encoder (%d basins)",
		len(prophet.RegressorNames()), len(encoder.Categories))

	predictionSvc := service.NewPredictionService(prophet, encoder)

	app := http.NewApp(http.AppConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    true,
	})
	http.SetupRoutes(app, predictionSvc, http.ForecastLimits{
		DefaultDays: cfg.DefaultForecastDays,
		MaxDays:     cfg.MaxForecastDays,
	})

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.ListenAddr(), cfg.Env)
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}
