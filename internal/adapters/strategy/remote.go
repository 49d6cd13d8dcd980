package strategy

import (
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/kiryu-dev/battleship-tournament/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// remote forwards every call to a strategy host over a message stream. The
// first transport error sticks: from then on the instance only forfeits.
type remote struct {
	cli    domain.Client
	err    *atomic.Error
	logger *zap.Logger
}

func newRemote(cli domain.Client, logger *zap.Logger) *remote {
	return &remote{
		cli:    cli,
		err:    atomic.NewError(nil),
		logger: logger,
	}
}

func (r *remote) SetPlayerID(p domain.Player) {
	r.send(domain.Message{Type: domain.SetPlayer, Payload: domain.SetPlayerPayload{Player: p}})
}

func (r *remote) SetBoardView(view domain.BoardView) {
	r.send(domain.Message{Type: domain.SetBoard, Payload: domain.NewSetBoardPayload(view)})
}

func (r *remote) Attack() (domain.Coordinate, bool) {
	if !r.send(domain.Message{Type: domain.RequestAttack}) {
		return domain.Coordinate{}, false
	}
	msg, err := r.cli.ReadMessage()
	if err != nil {
		r.fail(errors.WithMessage(err, "read attack reply"))
		return domain.Coordinate{}, false
	}
	if msg.Type != domain.AttackReply {
		r.fail(errors.WithMessagef(domain.ErrUnexpectedReply, "message type %d", msg.Type))
		return domain.Coordinate{}, false
	}
	reply, err := utils.UnmarshalJson[domain.AttackReplyPayload](msg.Payload)
	if err != nil {
		r.fail(errors.WithMessage(err, "unmarshal attack reply"))
		return domain.Coordinate{}, false
	}
	if reply.NoMoreMoves {
		return domain.Coordinate{}, false
	}
	return reply.Target, true
}

func (r *remote) NotifyAttackResult(attacker domain.Player, target domain.Coordinate, result domain.AttackResult) {
	r.send(domain.Message{
		Type: domain.AttackNotice,
		Payload: domain.AttackNoticePayload{
			Attacker: attacker,
			Target:   target,
			Result:   result,
		},
	})
}

// Err returns the transport error that broke the instance, if any.
func (r *remote) Err() error {
	return r.err.Load()
}

func (r *remote) Close() error {
	r.cli.Close()
	return nil
}

func (r *remote) send(msg domain.Message) bool {
	if r.err.Load() != nil {
		return false
	}
	if err := r.cli.WriteMessage(msg); err != nil {
		r.fail(errors.WithMessage(err, "write message"))
		return false
	}
	return true
}

func (r *remote) fail(err error) {
	if r.err.Load() != nil {
		return
	}
	r.err.Store(err)
	r.logger.Warn("remote strategy broke, forfeiting further moves", zap.Error(err))
}
