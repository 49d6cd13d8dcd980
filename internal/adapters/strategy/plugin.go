package strategy

import (
	"plugin"
	"sync"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
)

// NewStrategySymbol is the constructor a strategy plugin must export:
//
//	func NewStrategy() domain.Strategy
const NewStrategySymbol = "NewStrategy"

// pluginLoader opens each shared object once and hands out fresh instances
// from its constructor. Safe for concurrent use.
type pluginLoader struct {
	mu    *sync.Mutex
	ctors map[string]func() domain.Strategy
	open  func(path string) (plugin.Symbol, error)
}

func newPluginLoader() *pluginLoader {
	return &pluginLoader{
		mu:    &sync.Mutex{},
		ctors: make(map[string]func() domain.Strategy),
		open:  lookupConstructor,
	}
}

func lookupConstructor(path string) (plugin.Symbol, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "open plugin '%s'", path)
	}
	sym, err := p.Lookup(NewStrategySymbol)
	if err != nil {
		return nil, errors.WithMessagef(err, "lookup '%s' in '%s'", NewStrategySymbol, path)
	}
	return sym, nil
}

func (l *pluginLoader) New(path string) (domain.Strategy, error) {
	l.mu.Lock()
	ctor, ok := l.ctors[path]
	if !ok {
		sym, err := l.open(path)
		if err != nil {
			l.mu.Unlock()
			return nil, err
		}
		switch fn := sym.(type) {
		case func() domain.Strategy:
			ctor = fn
		case *func() domain.Strategy:
			ctor = *fn
		default:
			l.mu.Unlock()
			return nil, errors.WithMessagef(errBadSymbol, "'%s' in '%s' is %T", NewStrategySymbol, path, sym)
		}
		l.ctors[path] = ctor
	}
	l.mu.Unlock()
	return construct(path, ctor)
}

func construct(path string, ctor func() domain.Strategy) (s domain.Strategy, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, errors.WithMessagef(errConstructorPanic, "'%s': %v", path, r)
		}
	}()
	return ctor(), nil
}
