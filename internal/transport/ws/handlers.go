package ws

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/kiryu-dev/battleship-tournament/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *server) serveStrategy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	strategy, err := s.factory(name)
	if err != nil {
		s.logger.Warn("unknown strategy requested", zap.String("strategy", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	cli := newPeer(conn, 0)
	defer cli.Close()
	logger := s.logger.With(zap.String("strategy", name), zap.String("remote", r.RemoteAddr))
	logger.Info("new connection")
	err = drive(cli, strategy)
	switch {
	case errors.Is(err, domain.ErrConnectionClosed):
		logger.Info("connection closed")
	case err != nil:
		logger.Warn("connection dropped", zap.Error(err))
	}
}

// drive answers messages from the tournament side until the stream ends.
func drive(cli domain.Client, strategy domain.Strategy) error {
	for {
		msg, err := cli.ReadMessage()
		if err != nil {
			return err
		}
		switch msg.Type {
		case domain.SetPlayer:
			v, err := utils.UnmarshalJson[domain.SetPlayerPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'SetPlayerPayload' type")
			}
			strategy.SetPlayerID(v.Player)
		case domain.SetBoard:
			v, err := utils.UnmarshalJson[domain.SetBoardPayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'SetBoardPayload' type")
			}
			strategy.SetBoardView(v.View())
		case domain.RequestAttack:
			target, ok := strategy.Attack()
			err := cli.WriteMessage(domain.Message{
				Type:    domain.AttackReply,
				Payload: domain.AttackReplyPayload{Target: target, NoMoreMoves: !ok},
			})
			if err != nil {
				return errors.WithMessage(err, "send attack reply")
			}
		case domain.AttackNotice:
			v, err := utils.UnmarshalJson[domain.AttackNoticePayload](msg.Payload)
			if err != nil {
				return errors.WithMessage(err, "unmarshal json to 'AttackNoticePayload' type")
			}
			strategy.NotifyAttackResult(v.Attacker, v.Target, v.Result)
		default:
			return errors.Errorf("unexpected message type %d", msg.Type)
		}
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := jsoniter.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Warn(err.Error())
	}
}
