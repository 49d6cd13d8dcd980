package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/kiryu-dev/battleship-tournament/internal/adapters/strategy"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotEnoughPlayers  = errors.New("there are not enough specified players")
	ErrNoBoards          = errors.New("no boards specified")
	ErrDuplicatePlayer   = errors.New("duplicate player name")
	ErrDuplicateBoard    = errors.New("duplicate board name")
	ErrUnknownPlayerKind = errors.New("unknown player kind")
	ErrInvalidThreads    = errors.New("thread count must be positive")
)

const minPlayerCount = 2

type PlayerConfig struct {
	Name   string        `yaml:"name"`
	Kind   strategy.Kind `yaml:"kind"`
	Target string        `yaml:"target"`
}

type BoardConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type Config struct {
	Threads  int            `yaml:"threads"`
	MaxTurns int            `yaml:"max_turns"`
	Output   string         `yaml:"output"`
	Players  []PlayerConfig `yaml:"players"`
	Boards   []BoardConfig  `yaml:"boards"`
}

// New reads the config file. Relative board paths are resolved against the
// file's directory.
func New(cfgPath string) (Config, error) {
	file, err := os.Open(cfgPath)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()
	cfg := Config{}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WithMessage(err, "decode config")
	}
	if cfg.Threads == 0 {
		cfg.Threads = runtime.NumCPU()
	}
	dir := filepath.Dir(cfgPath)
	for i, b := range cfg.Boards {
		if !filepath.IsAbs(b.Path) {
			cfg.Boards[i].Path = filepath.Join(dir, b.Path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Threads < 1 {
		return errors.WithMessagef(ErrInvalidThreads, "got %d", c.Threads)
	}
	if len(c.Players) < minPlayerCount {
		return ErrNotEnoughPlayers
	}
	if len(c.Boards) == 0 {
		return ErrNoBoards
	}
	names := make(map[string]struct{}, len(c.Players))
	for _, p := range c.Players {
		if _, ok := names[p.Name]; ok {
			return errors.WithMessagef(ErrDuplicatePlayer, "'%s'", p.Name)
		}
		names[p.Name] = struct{}{}
		switch p.Kind {
		case strategy.KindBuiltin, strategy.KindPlugin, strategy.KindRemote:
		default:
			return errors.WithMessagef(ErrUnknownPlayerKind, "'%s' for player '%s'", p.Kind, p.Name)
		}
	}
	boards := make(map[string]struct{}, len(c.Boards))
	for _, b := range c.Boards {
		if _, ok := boards[b.Name]; ok {
			return errors.WithMessagef(ErrDuplicateBoard, "'%s'", b.Name)
		}
		boards[b.Name] = struct{}{}
	}
	return nil
}

func (c Config) PlayerNames() []string {
	names := make([]string, 0, len(c.Players))
	for _, p := range c.Players {
		names = append(names, p.Name)
	}
	return names
}

func (c Config) BoardNames() []string {
	names := make([]string, 0, len(c.Boards))
	for _, b := range c.Boards {
		names = append(names, b.Name)
	}
	return names
}

func (c Config) BoardPaths() map[string]string {
	paths := make(map[string]string, len(c.Boards))
	for _, b := range c.Boards {
		paths[b.Name] = b.Path
	}
	return paths
}

func (c Config) StrategyEntries() map[string]strategy.Entry {
	entries := make(map[string]strategy.Entry, len(c.Players))
	for _, p := range c.Players {
		entries[p.Name] = strategy.Entry{Kind: p.Kind, Target: p.Target}
	}
	return entries
}
