package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jobmarket/cmd"
	"jobmarket/internal/adapters/out/postgres/settingsrepo"
	"jobmarket/internal/core/ports"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	if err = app.Session().RestoreSettings(ctx); err != nil {
		log.Fatalf("Failed to restore worker settings: %v", err)
	}

	stopStream, err := app.EventStream().Subscribe(ctx, func(event ports.OrderEvent) {
		app.Session().ApplyEvent(context.Background(), event)
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to order events: %v", err)
	}
	defer stopStream()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:       goDotEnvVariable("HTTP_PORT"),
		DBHost:         goDotEnvVariable("DB_HOST"),
		DBPort:         goDotEnvVariable("DB_PORT"),
		DBUser:         goDotEnvVariable("DB_USER"),
		DBPassword:     goDotEnvVariable("DB_PASSWORD"),
		DBName:         goDotEnvVariable("DB_NAME"),
		DBSslMode:      goDotEnvVariable("DB_SSLMODE"),
		GatewayMode:    goDotEnvVariable("GATEWAY_MODE"),
		BackendBaseURL: goDotEnvVariable("BACKEND_BASE_URL"),
		AmqpURL:        goDotEnvVariable("AMQP_URL"),
		AmqpQueue:      goDotEnvVariable("AMQP_QUEUE"),
		PullInterval:   goDotEnvDuration("PULL_INTERVAL"),
		ConfirmTimeout: goDotEnvDuration("CONFIRM_TIMEOUT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvDuration(key string) time.Duration {
	value := goDotEnvVariable(key)
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return duration
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&settingsrepo.SettingsDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Web server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
