// Package saved tracks the listings a user has bookmarked. The bookmark
// logic works against Store; which backing store is active is decided once
// at startup by a capability probe.
package saved

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store persists (user, listing) bookmarks.
type Store interface {
	Save(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	IsSaved(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	// List returns saved listing ids, most recent first.
	List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// Backend names the store for logs and responses.
	Backend() string
}

// Probe reports whether the remote table is available.
type Probe interface {
	TableExists(ctx context.Context) (bool, error)
}

const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// Select picks remote when the probe finds the table and local otherwise.
// force ("remote" or "local") skips the probe. A failing probe selects local.
func Select(ctx context.Context, remote, local Store, probe Probe, force string, logger *zap.Logger) (Store, error) {
	switch force {
	case BackendRemote:
		return remote, nil
	case BackendLocal:
		return local, nil
	case "":
	default:
		return nil, fmt.Errorf("unknown saved items backend %q", force)
	}

	ok, err := probe.TableExists(ctx)
	if err != nil {
		logger.Warn("Saved items probe failed, using local store", zap.Error(err))
		return local, nil
	}
	if !ok {
		logger.Info("Saved items table missing, using local store")
		return local, nil
	}
	return remote, nil
}
