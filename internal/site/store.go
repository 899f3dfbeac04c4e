// File: internal/site/store.go
package site

import (
	"context"
	"fmt"
	"log/slog"

	"sitedeploy/pkg/storage"
)

// Store resolves containers by name on a storage backend
type Store struct {
	backend storage.Storage
	logger  *slog.Logger
}

func NewStore(backend storage.Storage, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger.With("component", "Store", "provider", string(backend.ProviderName())),
	}
}

// Returns the container called name, creating it when it does not exist yet.
// Names are passed through untouched; the provider rejects invalid ones
func (s *Store) Namespace(ctx context.Context, name string) (*Namespace, error) {
	s.logger.Debug("Resolving container", "name", name)

	exists, err := s.backend.BucketExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up container %s: %w", name, err)
	}

	if !exists {
		if err := s.backend.CreateBucket(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to create container %s: %w", name, err)
		}
		s.logger.Info("Created container", "name", name)
	}

	return &Namespace{
		name:    name,
		created: !exists,
		backend: s.backend,
		logger:  s.logger.With("container", name),
	}, nil
}
