package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
)

// ReplyTimeout bounds how long the tournament side waits for a strategy host
// to answer a single message. A stalled host fails the read and its player
// forfeits.
const ReplyTimeout = 10 * time.Second

type peer struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func newPeer(conn *websocket.Conn, timeout time.Duration) peer {
	return peer{conn: conn, timeout: timeout}
}

// Dial connects to a strategy host, e.g. ws://localhost:9000/strategy/hunter.
func Dial(ctx context.Context, url string) (domain.Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "dial '%s'", url)
	}
	return newPeer(conn, ReplyTimeout), nil
}

func (p peer) WriteMessage(msg domain.Message) error {
	w, err := p.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return errors.WithMessage(err, "open websocket writer")
	}
	if err := jsoniter.NewEncoder(w).Encode(msg); err != nil {
		_ = w.Close()
		return errors.WithMessagef(err, "encode message of type %d", msg.Type)
	}
	return errors.WithMessage(w.Close(), "flush websocket frame")
}

func (p peer) ReadMessage() (domain.Message, error) {
	if p.timeout > 0 {
		if err := p.conn.SetReadDeadline(time.Now().Add(p.timeout)); err != nil {
			return domain.Message{}, errors.WithMessage(err, "set read deadline")
		}
	}
	_, r, err := p.conn.NextReader()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return domain.Message{}, domain.ErrConnectionClosed
		}
		return domain.Message{}, errors.WithMessage(err, "open websocket reader")
	}
	var msg domain.Message
	if err := jsoniter.NewDecoder(r).Decode(&msg); err != nil {
		return domain.Message{}, errors.WithMessage(err, "decode message")
	}
	return msg, nil
}

func (p peer) Close() {
	_ = p.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = p.conn.Close()
}
