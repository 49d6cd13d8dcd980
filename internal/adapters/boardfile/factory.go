package boardfile

import (
	"sync"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// factory loads each board file once into a prototype and hands out clones.
// Safe for concurrent use by all workers.
type factory struct {
	mu         *sync.RWMutex
	paths      map[string]string
	prototypes map[string]*domain.Board
	logger     *zap.Logger
}

func NewFactory(paths map[string]string, logger *zap.Logger) *factory {
	cp := make(map[string]string, len(paths))
	for id, path := range paths {
		cp[id] = path
	}
	return &factory{
		mu:         &sync.RWMutex{},
		paths:      cp,
		prototypes: make(map[string]*domain.Board),
		logger:     logger,
	}
}

// Register adds an already built prototype under id.
func (f *factory) Register(id string, prototype *domain.Board) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prototypes[id] = prototype
}

// Preload parses every configured file up front so broken files surface
// before the tournament starts.
func (f *factory) Preload() error {
	for id := range f.paths {
		if _, err := f.prototype(id); err != nil {
			return err
		}
	}
	return nil
}

func (f *factory) Board(id string) (*domain.Board, error) {
	prototype, err := f.prototype(id)
	if err != nil {
		return nil, err
	}
	return prototype.Clone(), nil
}

func (f *factory) prototype(id string) (*domain.Board, error) {
	f.mu.RLock()
	prototype, ok := f.prototypes[id]
	f.mu.RUnlock()
	if ok {
		return prototype, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if prototype, ok := f.prototypes[id]; ok {
		return prototype, nil
	}
	path, ok := f.paths[id]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownBoard, "'%s'", id)
	}
	prototype, err := Load(path)
	if err != nil {
		return nil, err
	}
	f.logger.Info("board loaded",
		zap.String("board", id),
		zap.Int("width", prototype.Width()),
		zap.Int("height", prototype.Height()),
		zap.Int("depth", prototype.Depth()),
	)
	f.prototypes[id] = prototype
	return prototype, nil
}
