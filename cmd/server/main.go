package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/fitforge/teamsync/internal/common/clock"
	"github.com/fitforge/teamsync/internal/common/identifier"
	"github.com/fitforge/teamsync/internal/handlers/httpapi"
	"github.com/fitforge/teamsync/internal/models"
	"github.com/fitforge/teamsync/internal/realtime"
	inviteRepo "github.com/fitforge/teamsync/internal/repositories/invite"
	notificationRepo "github.com/fitforge/teamsync/internal/repositories/notification"
	presenceRepo "github.com/fitforge/teamsync/internal/repositories/presence"
	profileRepo "github.com/fitforge/teamsync/internal/repositories/profile"
	sessionRepo "github.com/fitforge/teamsync/internal/repositories/session"
	teamService "github.com/fitforge/teamsync/internal/services/team"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize the event bus
	bus, err := realtime.NewRedis(&realtime.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create event bus: %v", err)
	}

	// Initialize repositories
	invites, err := inviteRepo.NewRedis(&inviteRepo.Config{
		RedisClient: redisClient,
		Publisher:   bus,
	})
	if err != nil {
		log.Fatalf("Failed to create invite repository: %v", err)
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
		Publisher:   bus,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	presences, err := presenceRepo.NewRedis(&presenceRepo.Config{
		RedisClient: redisClient,
		Publisher:   bus,
	})
	if err != nil {
		log.Fatalf("Failed to create presence repository: %v", err)
	}

	profiles, err := profileRepo.NewRedis(&profileRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create profile repository: %v", err)
	}

	notifications, err := notificationRepo.NewRedis(&notificationRepo.Config{
		RedisClient: redisClient,
		Publisher:   bus,
	})
	if err != nil {
		log.Fatalf("Failed to create notification repository: %v", err)
	}

	// Initialize the team service
	svc, err := teamService.NewService(&teamService.Config{
		DefaultCodeTTLMinutes: getEnvInt("JOIN_CODE_TTL_MINUTES", 0),
	}, invites, sessions, presences, profiles, notifications, clock.New(), identifier.New())
	if err != nil {
		log.Fatalf("Failed to create team service: %v", err)
	}

	// Initialize the per-user coordinator manager
	settings := models.Settings{
		AllowTeamInvites: getEnvBool("ALLOW_TEAM_INVITES", true),
		TeamworkV2:       getEnvBool("TEAMWORK_V2", true),
		EnableSounds:     getEnvBool("ENABLE_SOUNDS", true),
	}

	manager, err := httpapi.NewManager(&httpapi.ManagerConfig{
		Service:      svc,
		Feed:         bus,
		Settings:     &settings,
		ShareBaseURL: getEnv("SHARE_BASE_URL", ""),
	})
	if err != nil {
		log.Fatalf("Failed to create coordinator manager: %v", err)
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	manager.Start(runCtx)

	// Initialize the HTTP handler
	handler, err := httpapi.New(&httpapi.Config{
		Manager: manager,
		Feed:    bus,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP handler: %v", err)
	}

	server := &http.Server{
		Addr:    getEnv("HTTP_ADDR", ":8080"),
		Handler: handler.Routes(),
	}

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}
	cancelRun()

	log.Println("Server has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
