package backend

import (
	"context"
	"fmt"

	"ledger/internal/amqp"
	"ledger/internal/log"
	"ledger/internal/storage"
	"ledger/internal/storage/jsonfile"
	"ledger/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Wrap(nil, log.ComponentBackend)
	} else {
		logger = logger.WithComponent(log.ComponentBackend)
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store storage.Store
		err   error
	)
	switch config.Type {
	case SQLiteBackend:
		store, err = f.createSQLiteStore(config)
	case FileBackend:
		store, err = f.createFileStore(config)
	case MemoryBackend:
		store = f.createMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	publisher := f.createPublisher(ctx, config)

	return &Result{
		Store:     store,
		Publisher: publisher,
		Cleanup: func() error {
			if publisher != nil {
				if err := publisher.Close(); err != nil {
					f.logger.Warn("Failed to close AMQP client", log.FieldError, err)
				}
			}
			return store.Close()
		},
	}, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (storage.Store, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return store, nil
}

func (f *DefaultFactory) createFileStore(config Config) (storage.Store, error) {
	store, err := jsonfile.New(config.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}
	f.logger.Info("Initialized file backend", "data_directory", config.DataDirectory)
	return store, nil
}

func (f *DefaultFactory) createMemoryStore() storage.Store {
	f.logger.Warn("Initialized memory backend, changes will not survive a restart")
	return memory.New()
}

// createPublisher dials AMQP when configured. A broker that is down at
// start-up is not fatal: the ledger keeps working without notifications.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without notifications", log.FieldError, err)
		return nil
	}
	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
