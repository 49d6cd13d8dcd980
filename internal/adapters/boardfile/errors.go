package boardfile

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownBoard    = errors.New("unknown board")
	ErrInvalidBoard    = errors.New("invalid board definition")
	errUnknownShipType = errors.New("unknown ship type")
	errUnknownPlayer   = errors.New("unknown player")
	errOutOfBounds     = errors.New("ship out of bounds")
	errOverlap         = errors.New("ships overlap")
)
