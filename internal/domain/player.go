package domain

type Player byte

const (
	PlayerA = Player(iota)
	PlayerB
	// NoPlayer is the winner of a tied game and the owner of an empty cell.
	NoPlayer
)

func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "none"
	}
}
