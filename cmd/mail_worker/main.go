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
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stibodx/user-directory/config"
	"github.com/stibodx/user-directory/pkg/mailer"
)

// mail_worker consumes email jobs from RabbitMQ and delivers them via
// Mailgun. Currently the only producer is the user service publishing
// welcome emails on signup.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; mail worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("mail worker consuming from %q", cfg.RabbitMQEmailQueue)
	for {
		select {
		case <-quit:
			log.Println("mail worker shutting down")
			return
		case d, ok := <-msgs:
			if !ok {
				log.Println("consume channel closed")
				return
			}
			handleDelivery(mg, d)
		}
	}
}

func handleDelivery(mg *mailer.Mailgun, d amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		log.Printf("bad job payload, dropping: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if err := mailer.RenderWelcome(&job); err != nil {
		log.Printf("render failed for %s: %v", job.To, err)
		_ = d.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := mg.Send(ctx, job.To, job.Subject, job.Text, job.HTML); err != nil {
		log.Printf("send to %s failed, requeueing: %v", job.To, err)
		_ = d.Nack(false, true)
		return
	}
	log.Printf("sent %q to %s", job.Subject, job.To)
	_ = d.Ack(false)
}
