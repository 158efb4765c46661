// Command notifier consumes queued OTP notifications and mails them.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/eventportal/internal/logging"
	"github.com/dmitrijs2005/eventportal/internal/server"
	"github.com/dmitrijs2005/eventportal/internal/server/config"
	"github.com/dmitrijs2005/eventportal/internal/server/notify"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	consumer, err := notify.DialConsumer(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, 0)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer consumer.Close()

	deliveries, err := consumer.Deliveries(ctx)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	worker := notify.NewWorker(notify.NewSMTPSender(server.SMTPConfig(cfg)), logger)

	logger.Info(ctx, "Starting notifier...", "queue", cfg.AMQPQueue)
	if err := worker.Run(ctx, deliveries); err != nil {
		logger.Error(ctx, err.Error())
	}
	logger.Info(ctx, "Notifier stopped")
}
