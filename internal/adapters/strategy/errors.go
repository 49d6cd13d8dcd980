package strategy

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrUnknownKind      = errors.New("unknown strategy kind")
	errBadSymbol        = errors.New("plugin symbol has unexpected type")
	errConstructorPanic = errors.New("plugin constructor panicked")
)
