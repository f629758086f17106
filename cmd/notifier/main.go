package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jabaapp/user-service/config"
	userapp "github.com/jabaapp/user-service/internal/application"
	"github.com/jabaapp/user-service/pkg/helpers"
	"github.com/jabaapp/user-service/pkg/mailer"
)

// notifier consumes user lifecycle events and sends a welcome email for
// every user.created. Other event types are acknowledged and dropped.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notifier", cfg.Env, cfg.LogFile)

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notifier disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.EventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.EventsQueue, cfg.ConsumerPrefetch)
	if err != nil {
		log.Fatalf("amqp connect: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var ev userapp.UserEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				logger.WithError(err).Warn("bad message")
				_ = msg.Nack(false, false)
				continue
			}

			if ev.Type != userapp.EventUserCreated || ev.Email == "" {
				_ = msg.Ack(false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := mg.Send(c, ev.Email,
				"Welcome, "+ev.Name,
				"Hi "+ev.Name+", your account "+ev.Login+" is ready.",
				"")
			cancel()
			if err != nil {
				logger.WithError(err).WithField("user_id", ev.UserID).Warn("welcome email failed")
				_ = msg.Nack(false, true)
				continue
			}

			logger.WithField("user_id", ev.UserID).Info("welcome email sent")
			_ = msg.Ack(false)
		}
	}()

	logger.Infof("notifier consuming from %s", cfg.EventsQueue)
	select {
	case <-stop:
		logger.Info("notifier shutting down")
	case <-done:
		logger.Info("delivery channel closed")
	}
}
