package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/guesthouse/config"
	"github.com/Domenick1991/guesthouse/internal/kafka"
	"github.com/Domenick1991/guesthouse/internal/notify"
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
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("kafka.brokers is required for the worker")
	}

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
	defer consumer.Close()

	sender := notify.NewSender()

	log.Printf("worker consuming %s as %s", topic, cfg.Kafka.GroupID)
	if err := consumer.ConsumeBookingEvents(ctx, sender.Send); err != nil {
		log.Printf("consumer stopped: %v", err)
		return
	}
	log.Printf("worker shut down")
}
