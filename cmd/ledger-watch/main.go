package main

import (
	"context"
	"errors"
	"os"

	"ledger/internal/amqp"
	"ledger/internal/cli"
	"ledger/internal/log"
)

func main() {
	cfg, logger, err := cli.Bootstrap(log.ComponentWatch)
	if err != nil {
		logger.Error("Startup failed", log.FieldError, err)
		os.Exit(1)
	}
	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is not set, nothing to watch")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := cli.ShutdownContext(context.Background(), logger)
	defer cancel()

	logger.Info("Watching ledger changes",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		log.FieldOperation, log.OpStartup)

	err = client.ConsumeChanges(ctx, func(msg *amqp.ChangeMessage) error {
		logger.Info("Ledger changed",
			log.NewFields().WithMutation(msg.Op, msg.Slot, string(msg.ID), msg.Version).ToSlice()...)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Change consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Watcher stopped", log.FieldOperation, log.OpShutdown)
}
