package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/guesthouse/config"
	"github.com/Domenick1991/guesthouse/internal/auth"
	"github.com/Domenick1991/guesthouse/internal/bootstrap"
	"github.com/Domenick1991/guesthouse/internal/cache"
	"github.com/Domenick1991/guesthouse/internal/calendar"
	"github.com/Domenick1991/guesthouse/internal/kafka"
	"github.com/Domenick1991/guesthouse/internal/repository"
	"github.com/Domenick1991/guesthouse/internal/service/booking"
	"github.com/Domenick1991/guesthouse/internal/service/hosts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	checks := map[string]bootstrap.Check{"postgres": pool.Ping}

	var bookingCache booking.Cache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SnapshotCacheTTL)*time.Second)
		defer redisCache.Close()
		bookingCache = redisCache
		checks["redis"] = redisCache.Ping
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		topics := []string{cfg.Kafka.BookingTopic}
		if cfg.Kafka.NotificationsTopic != "" {
			topics = append(topics, cfg.Kafka.NotificationsTopic)
		}
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, topics...)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		checks["kafka"] = kafkaProducer.CheckConnection
	}

	bookingRepo := repository.NewBookingRepository(pool)
	hostRepo := repository.NewHostRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		bookingCache,
		producer,
		calendar.NewEngine(cfg.Calendar.RowHeightPx),
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.WriteLockTTL)*time.Second,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithSuggestionLimits(cfg.Booking.SuggestionHorizonDays, cfg.Booking.SuggestionMaxResults),
	)

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute)
	hostService := hosts.NewHostService(hostRepo, issuer, cfg.HTTP.PublicURL)

	if err := bootstrap.Run(ctx, cfg, bootstrap.Services{
		Bookings: bookingService,
		Hosts:    hostService,
		Issuer:   issuer,
		Checks:   checks,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
