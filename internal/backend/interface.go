// Package backend builds the storage adapter and optional change publisher
// selected by configuration.
package backend

import (
	"context"

	"ledger/internal/amqp"
	"ledger/internal/storage"
)

// CleanupFunc releases what a backend opened.
type CleanupFunc func() error

// Result is what CreateBackend hands to main. Publisher is nil when AMQP
// is disabled or unreachable at start-up.
type Result struct {
	Store     storage.Store
	Publisher *amqp.Client
	Cleanup   CleanupFunc
}

type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

type Config struct {
	Type BackendType

	// sqlite
	SQLiteDBPath string

	// file
	DataDirectory string

	// optional change notifications
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	FileBackend   BackendType = "file"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
