package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/sms"
	userServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBooking/internal/notifier"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

// SMS-воркер: читает события уведомлений из Kafka и отправляет их через Twilio
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("Kafka brokers are not configured, nothing to consume")
	}

	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)

	sender := sms.NewSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, log)
	if cfg.Twilio.AccountSID == "" {
		log.Warn("Twilio credentials are not set, running in dry-run mode")
	}

	relay := notifier.NewSMSRelay(userClient, sender, nil, log)

	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting SMS worker (brokers=%v, topic=%s, group=%s)",
		cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic, cfg.Kafka.GroupID)

	if err := consumer.Consume(ctx, relay.Handle); err != nil {
		log.Error("SMS worker stopped with error: %v", err)
		return
	}

	log.Info("SMS worker stopped gracefully")
}
