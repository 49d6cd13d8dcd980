package strategy

import (
	"context"
	"time"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Kind string

const (
	KindBuiltin = Kind("builtin")
	KindPlugin  = Kind("plugin")
	KindRemote  = Kind("remote")
)

const dialTimeout = 5 * time.Second

// Entry tells the catalog where a player's strategy comes from. Target is a
// builtin name, a plugin path or a websocket URL depending on Kind.
type Entry struct {
	Kind   Kind
	Target string
}

// DialFunc opens a message stream to a remote strategy host.
type DialFunc func(ctx context.Context, url string) (domain.Client, error)

type catalog struct {
	entries map[string]Entry
	plugins *pluginLoader
	dial    DialFunc
	logger  *zap.Logger
}

// NewCatalog returns the StrategyProvider that resolves configured players.
// dial may be nil when no entry is remote.
func NewCatalog(entries map[string]Entry, dial DialFunc, logger *zap.Logger) *catalog {
	cp := make(map[string]Entry, len(entries))
	for name, entry := range entries {
		cp[name] = entry
	}
	return &catalog{
		entries: cp,
		plugins: newPluginLoader(),
		dial:    dial,
		logger:  logger,
	}
}

func (c *catalog) New(id string) (domain.Strategy, error) {
	entry, ok := c.entries[id]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownStrategy, "player '%s'", id)
	}
	switch entry.Kind {
	case KindBuiltin:
		return Builtin(entry.Target)
	case KindPlugin:
		return c.plugins.New(entry.Target)
	case KindRemote:
		if c.dial == nil {
			return nil, errors.WithMessagef(ErrUnknownKind, "no dialer for remote player '%s'", id)
		}
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		defer cancel()
		cli, err := c.dial(ctx, entry.Target)
		if err != nil {
			return nil, errors.WithMessagef(err, "dial remote player '%s'", id)
		}
		return newRemote(cli, c.logger.With(zap.String("strategy", id))), nil
	default:
		return nil, errors.WithMessagef(ErrUnknownKind, "'%s'", entry.Kind)
	}
}
