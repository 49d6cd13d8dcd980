package strategy

import (
	"net/http/httptest"
	"plugin"
	"strings"
	"testing"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/kiryu-dev/battleship-tournament/internal/transport/ws"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCatalogBuiltin(t *testing.T) {
	c := NewCatalog(map[string]Entry{
		"alice": {Kind: KindBuiltin, Target: Sequential},
		"bob":   {Kind: KindBuiltin, Target: "psychic"},
		"carol": {Kind: "carrier-pigeon", Target: "x"},
	}, nil, zaptest.NewLogger(t))

	first, err := c.New("alice")
	require.NoError(t, err)
	second, err := c.New("alice")
	require.NoError(t, err)
	assert.NotSame(t, first, second, "every call yields a fresh instance")

	_, err = c.New("bob")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	_, err = c.New("carol")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = c.New("dave")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestPluginLoaderCachesConstructor(t *testing.T) {
	opened := 0
	loader := newPluginLoader()
	loader.open = func(path string) (plugin.Symbol, error) {
		opened++
		switch path {
		case "good.so":
			return func() domain.Strategy { return NewForfeit() }, nil
		case "odd.so":
			return 42, nil
		default:
			return nil, errors.New("no such file")
		}
	}

	for i := 0; i < 3; i++ {
		s, err := loader.New("good.so")
		require.NoError(t, err)
		assert.NotNil(t, s)
	}
	assert.Equal(t, 1, opened)

	_, err := loader.New("odd.so")
	assert.ErrorIs(t, err, errBadSymbol)
	_, err = loader.New("missing.so")
	assert.Error(t, err)
}

func TestPluginLoaderRecoversConstructorPanic(t *testing.T) {
	loader := newPluginLoader()
	loader.open = func(string) (plugin.Symbol, error) {
		return func() domain.Strategy { panic("constructor blew up") }, nil
	}

	var err error
	require.NotPanics(t, func() {
		_, err = loader.New("broken.so")
	})
	assert.ErrorIs(t, err, errConstructorPanic)
}

func TestCatalogPluginOpenFailure(t *testing.T) {
	c := NewCatalog(map[string]Entry{
		"alice": {Kind: KindPlugin, Target: "/nonexistent/alice.so"},
	}, nil, zaptest.NewLogger(t))
	_, err := c.New("alice")
	assert.Error(t, err)
}

func startHost(t *testing.T) string {
	host := ws.New("", Builtin, zaptest.NewLogger(t))
	ts := httptest.NewServer(host.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestRemoteStrategy(t *testing.T) {
	url := startHost(t)
	c := NewCatalog(map[string]Entry{
		"remote": {Kind: KindRemote, Target: url + "/strategy/" + Sequential},
	}, ws.Dial, zaptest.NewLogger(t))

	s, err := c.New("remote")
	require.NoError(t, err)
	r, ok := s.(*remote)
	require.True(t, ok)
	defer func() {
		_ = r.Close()
	}()

	s.SetPlayerID(domain.PlayerA)
	s.SetBoardView(smallView())
	assert.Equal(t, []domain.Coordinate{
		domain.NewCoordinate(1, 3, 1),
		domain.NewCoordinate(2, 1, 1),
		domain.NewCoordinate(2, 2, 1),
		domain.NewCoordinate(2, 3, 1),
	}, drain(s))
	assert.NoError(t, r.Err())
}

func TestRemoteStrategyUnknownHostStrategy(t *testing.T) {
	url := startHost(t)
	c := NewCatalog(map[string]Entry{
		"remote": {Kind: KindRemote, Target: url + "/strategy/psychic"},
	}, ws.Dial, zaptest.NewLogger(t))
	_, err := c.New("remote")
	assert.Error(t, err)
}

func TestRemoteWithoutDialer(t *testing.T) {
	c := NewCatalog(map[string]Entry{
		"remote": {Kind: KindRemote, Target: "ws://localhost:1/strategy/x"},
	}, nil, zaptest.NewLogger(t))
	_, err := c.New("remote")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

// brokenClient fails every read and write.
type brokenClient struct {
	writes int
}

func (b *brokenClient) WriteMessage(domain.Message) error {
	b.writes++
	return errors.New("broken pipe")
}

func (b *brokenClient) ReadMessage() (domain.Message, error) {
	return domain.Message{}, domain.ErrConnectionClosed
}

func (b *brokenClient) Close() {}

func TestRemoteFailureSticks(t *testing.T) {
	cli := &brokenClient{}
	r := newRemote(cli, zaptest.NewLogger(t))

	r.SetPlayerID(domain.PlayerA)
	require.Error(t, r.Err())
	r.SetBoardView(smallView())
	_, ok := r.Attack()
	assert.False(t, ok)
	r.NotifyAttackResult(domain.PlayerB, domain.NewCoordinate(1, 1, 1), domain.Miss)
	assert.Equal(t, 1, cli.writes, "no traffic after the first failure")
}

// replayClient answers every attack request with a canned message.
type replayClient struct {
	reply domain.Message
}

func (c *replayClient) WriteMessage(domain.Message) error {
	return nil
}

func (c *replayClient) ReadMessage() (domain.Message, error) {
	return c.reply, nil
}

func (c *replayClient) Close() {}

func TestRemoteRejectsUnexpectedReply(t *testing.T) {
	r := newRemote(&replayClient{reply: domain.Message{Type: domain.SetBoard}}, zaptest.NewLogger(t))
	_, ok := r.Attack()
	assert.False(t, ok)
	assert.ErrorIs(t, r.Err(), domain.ErrUnexpectedReply)
}

func TestRemoteNoMoreMoves(t *testing.T) {
	r := newRemote(&replayClient{reply: domain.Message{
		Type:    domain.AttackReply,
		Payload: map[string]any{"NoMoreMoves": true},
	}}, zaptest.NewLogger(t))
	_, ok := r.Attack()
	assert.False(t, ok)
	assert.NoError(t, r.Err())
}
