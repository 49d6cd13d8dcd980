package pool

import (
	"io"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// faulty is implemented by strategies that can break beyond repair, e.g. a
// remote strategy whose connection dropped.
type faulty interface {
	Err() error
}

// Pool caches strategy instances for one worker. It is never shared between
// goroutines and therefore takes no locks.
type Pool struct {
	strategies domain.StrategyProvider
	boards     domain.BoardFactory
	cache      map[string]domain.Strategy
	views      map[string]domain.BoardView
	logger     *zap.Logger
}

func New(strategies domain.StrategyProvider, boards domain.BoardFactory, logger *zap.Logger) *Pool {
	return &Pool{
		strategies: strategies,
		boards:     boards,
		cache:      make(map[string]domain.Strategy),
		views:      make(map[string]domain.BoardView),
		logger:     logger,
	}
}

func (p *Pool) Strategy(id string) (domain.Strategy, error) {
	if strategy, ok := p.cache[id]; ok {
		f, isFaulty := strategy.(faulty)
		if !isFaulty || f.Err() == nil {
			return strategy, nil
		}
		p.logger.Warn("dropping broken strategy instance", zap.String("strategy", id), zap.Error(f.Err()))
		p.evict(id)
	}
	strategy, err := p.strategies.New(id)
	if err != nil {
		return nil, errors.WithMessagef(err, "load strategy '%s'", id)
	}
	p.cache[id] = strategy
	return strategy, nil
}

// Board always hands out a fresh board; match state never leaks between games.
func (p *Pool) Board(id string) (*domain.Board, error) {
	board, err := p.boards.Board(id)
	if err != nil {
		return nil, errors.WithMessagef(err, "load board '%s'", id)
	}
	return board, nil
}

// Retain keeps the latest view handed to a strategy alive until the next one
// replaces it.
func (p *Pool) Retain(id string, view domain.BoardView) {
	p.views[id] = view
}

func (p *Pool) Retained(id string) (domain.BoardView, bool) {
	view, ok := p.views[id]
	return view, ok
}

// Close releases every cached strategy that holds external resources.
func (p *Pool) Close() {
	for id := range p.cache {
		p.evict(id)
	}
}

func (p *Pool) evict(id string) {
	if closer, ok := p.cache[id].(io.Closer); ok {
		if err := closer.Close(); err != nil {
			p.logger.Warn("failed to close strategy", zap.String("strategy", id), zap.Error(err))
		}
	}
	delete(p.cache, id)
	delete(p.views, id)
}
