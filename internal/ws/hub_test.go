package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/internal/game"
	"github.com/radieske/treasure-table-poc/internal/wagering"
	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

type rawMsg struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func newTestHub(t *testing.T) (*Hub, *game.Players) {
	t.Helper()
	players := game.NewPlayers(60000)
	engine := game.NewEngine(zap.NewNop(), players, "Ruperto")
	bets := wagering.NewLedger(zap.NewNop(), players)
	return NewHub(zap.NewNop(), engine, bets, nil), players
}

func dialHub(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func readMsg(t *testing.T, conn *websocket.Conn) rawMsg {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m rawMsg
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func readState(t *testing.T, conn *websocket.Conn, wantType string) events.GameState {
	t.Helper()
	m := readMsg(t, conn)
	require.Equal(t, wantType, m.Type)
	var st events.GameState
	require.NoError(t, json.Unmarshal(m.Data, &st))
	return st
}

func TestConnectReceivesFullState(t *testing.T) {
	hub, _ := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	st := readState(t, conn, "initialState")
	assert.Equal(t, 0, st.TakenCount)
	assert.Equal(t, "Ruperto", st.CurrentPlayer)
	assert.Len(t, st.DiamondStates, game.GroupSize)
}

func TestTakeTokenBroadcastsState(t *testing.T) {
	hub, _ := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	readState(t, conn, "initialState")

	err := conn.WriteJSON(map[string]any{
		"type": "takeToken",
		"data": TakeTokenMsg{Player: "Juan", RowID: game.GroupDiamonds, Index: 0},
	})
	require.NoError(t, err)

	st := readState(t, conn, "stateChanged")
	assert.Equal(t, 1, st.TakenCount)
	assert.False(t, st.DiamondStates[0].Available)
	assert.Equal(t, []string{game.GroupDiamonds}, st.TakenRowsByPlayer["Juan"])
}

func TestInvalidClaimRejectedOnlyToRequester(t *testing.T) {
	hub, _ := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	readState(t, conn, "initialState")

	err := conn.WriteJSON(map[string]any{
		"type": "takeToken",
		"data": TakeTokenMsg{Player: "Juan", RowID: "bogus", Index: 99},
	})
	require.NoError(t, err)

	m := readMsg(t, conn)
	assert.Equal(t, "claimRejected", m.Type)
}

func TestRegisterPlayerBroadcastsList(t *testing.T) {
	hub, players := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	readState(t, conn, "initialState")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "registerPlayer", "data": "Pepe"}))

	m := readMsg(t, conn)
	require.Equal(t, "updatePlayersList", m.Type)
	var list []string
	require.NoError(t, json.Unmarshal(m.Data, &list))
	assert.Contains(t, list, "Pepe")
	assert.True(t, players.Known("Pepe"))
	assert.Equal(t, int64(60000), players.Balance("Pepe"))
}

func TestPlaceBetOverWS(t *testing.T) {
	hub, players := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	readState(t, conn, "initialState")

	// caminho WebSocket cria o apostador desconhecido com saldo inicial
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "placeBet",
		"data": PlaceBetMsg{UserID: "Mauricio", MatchID: "m1", BetType: "home", Amount: 1000},
	}))

	m := readMsg(t, conn)
	require.Equal(t, "betPlaced", m.Type)
	var placed events.BetPlaced
	require.NoError(t, json.Unmarshal(m.Data, &placed))
	assert.NotEmpty(t, placed.BetID)
	assert.Equal(t, int64(59000), placed.Balance)

	st := readState(t, conn, "stateChanged")
	assert.Equal(t, int64(59000), st.Score["Mauricio"])
	assert.Equal(t, int64(59000), players.Balance("Mauricio"))
}

func TestBetRejectedOnlyToRequester(t *testing.T) {
	hub, _ := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()
	readState(t, conn, "initialState")

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "placeBet",
		"data": PlaceBetMsg{UserID: "Mauricio", MatchID: "m1", BetType: "home", Amount: 999999},
	}))

	m := readMsg(t, conn)
	assert.Equal(t, "betRejected", m.Type)
}

func TestStaleOverwriteRejected(t *testing.T) {
	hub, _ := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	st := readState(t, conn, "initialState")
	st.Version += 3 // cliente partiu de uma versão que não existe

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "updateState", "data": st}))

	m := readMsg(t, conn)
	assert.Equal(t, "stateRejected", m.Type)
}

func TestFreshOverwriteBroadcast(t *testing.T) {
	hub, _ := newTestHub(t)
	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	st := readState(t, conn, "initialState")
	st.CurrentPlayer = "Juan"

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "updateState", "data": st}))

	got := readState(t, conn, "stateChanged")
	assert.Equal(t, "Juan", got.CurrentPlayer)
	assert.Greater(t, got.Version, st.Version)
}
