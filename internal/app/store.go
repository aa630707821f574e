package app

import (
	"context"
	"fmt"

	"github.com/atomicstack/zkbrowse/internal/gateway"
	"github.com/atomicstack/zkbrowse/internal/logging/events"
	"github.com/go-zookeeper/zk"
)

// openStore opens the configured backend. Only ZooKeeper has a session
// event channel; the others return nil.
func openStore(ctx context.Context, cfg Config) (gateway.Store, <-chan zk.Event, error) {
	switch cfg.Store {
	case StoreZooKeeper, "":
		z, err := gateway.DialZooKeeper(cfg.Servers, cfg.SessionTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("open zookeeper: %w", err)
		}
		return z, z.SessionEvents(), nil
	case StoreSQLite:
		s, err := gateway.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil, nil
	case StoreMemory:
		events.Gateway.Connect(StoreMemory, "")
		return gateway.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
