package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrUnexpectedReply  = errors.New("unexpected reply")
)

type messageType byte

const (
	SetPlayer = messageType(iota)
	SetBoard
	RequestAttack
	AttackReply
	AttackNotice
)

// Message is the envelope exchanged with a remote strategy host.
type Message struct {
	Type    messageType
	Payload any
}

type SetPlayerPayload struct {
	Player Player
}

type SetBoardPayload struct {
	Width  int
	Height int
	Depth  int
	Cells  string
}

type AttackReplyPayload struct {
	Target      Coordinate
	NoMoreMoves bool
}

type AttackNoticePayload struct {
	Attacker Player
	Target   Coordinate
	Result   AttackResult
}

func NewSetBoardPayload(view BoardView) SetBoardPayload {
	return SetBoardPayload{
		Width:  view.Width(),
		Height: view.Height(),
		Depth:  view.Depth(),
		Cells:  string(view.Cells()),
	}
}

func (p SetBoardPayload) View() BoardView {
	return NewBoardViewFromCells(p.Width, p.Height, p.Depth, []byte(p.Cells))
}

// Client is one side of a message stream with a remote strategy.
type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Close()
}
