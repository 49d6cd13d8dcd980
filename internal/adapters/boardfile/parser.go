package boardfile

import (
	"os"
	"strings"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type shipDef struct {
	Player      string `yaml:"player"`
	Type        string `yaml:"type"`
	Row         int    `yaml:"row"`
	Col         int    `yaml:"col"`
	Depth       int    `yaml:"depth"`
	Orientation string `yaml:"orientation"`
}

type boardDef struct {
	Width  int       `yaml:"width"`
	Height int       `yaml:"height"`
	Depth  int       `yaml:"depth"`
	Ships  []shipDef `yaml:"ships"`
}

func Load(path string) (*domain.Board, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "open board file '%s'", path)
	}
	defer func() {
		_ = file.Close()
	}()
	def := boardDef{}
	if err := yaml.NewDecoder(file).Decode(&def); err != nil {
		return nil, errors.WithMessagef(err, "decode board file '%s'", path)
	}
	board, err := build(def)
	if err != nil {
		return nil, errors.WithMessagef(err, "board file '%s'", path)
	}
	return board, nil
}

func Parse(data []byte) (*domain.Board, error) {
	def := boardDef{}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.WithMessage(err, "decode board")
	}
	return build(def)
}

// build places the ships after checking only what placement itself needs:
// known attributes, cells on the board, no shared cells.
func build(def boardDef) (*domain.Board, error) {
	if def.Width < 1 || def.Height < 1 || def.Depth < 0 {
		return nil, errors.WithMessagef(ErrInvalidBoard, "dimensions %dx%dx%d", def.Width, def.Height, def.Depth)
	}
	board := domain.NewBoard(def.Width, def.Height, def.Depth)
	for i, s := range def.Ships {
		piece, err := s.piece()
		if err != nil {
			return nil, errors.WithMessagef(err, "ship #%d", i+1)
		}
		for _, c := range piece.Cells() {
			if !board.InBounds(c) {
				return nil, errors.WithMessagef(errOutOfBounds, "ship #%d at %s", i+1, c.ToExternal())
			}
			if board.PieceAt(c) != nil {
				return nil, errors.WithMessagef(errOverlap, "ship #%d at %s", i+1, c.ToExternal())
			}
		}
		board.Place(piece)
	}
	return board, nil
}

func (s shipDef) piece() (*domain.GamePiece, error) {
	var owner domain.Player
	switch strings.ToUpper(s.Player) {
	case "A":
		owner = domain.PlayerA
	case "B":
		owner = domain.PlayerB
	default:
		return nil, errors.WithMessagef(errUnknownPlayer, "'%s'", s.Player)
	}
	if len(s.Type) != 1 {
		return nil, errors.WithMessagef(errUnknownShipType, "'%s'", s.Type)
	}
	shipType, ok := domain.ShipTypeBySymbol(s.Type[0])
	if !ok {
		return nil, errors.WithMessagef(errUnknownShipType, "'%s'", s.Type)
	}
	var orientation domain.Orientation
	switch strings.ToLower(s.Orientation) {
	case "", "horizontal", "h":
		orientation = domain.Horizontal
	case "vertical", "v":
		orientation = domain.Vertical
	case "depth", "d":
		orientation = domain.Deep
	default:
		return nil, errors.WithMessagef(ErrInvalidBoard, "orientation '%s'", s.Orientation)
	}
	depth := s.Depth
	if depth == 0 {
		depth = 1
	}
	anchor := domain.NewCoordinate(s.Row, s.Col, depth).ToInternal()
	return domain.NewGamePiece(owner, shipType, anchor, orientation), nil
}
