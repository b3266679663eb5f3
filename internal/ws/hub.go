package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/treasure-table-poc/internal/game"
	"github.com/radieske/treasure-table-poc/internal/wagering"
	"github.com/radieske/treasure-table-poc/internal/wagering/producer"
	"github.com/radieske/treasure-table-poc/pkg/contracts/events"
)

// clientConn é uma conexão de observador. O mutex serializa escritas na
// mesma conexão (broadcasts e respostas diretas podem concorrer).
type clientConn struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *clientConn) send(msg ServerMsg) error {
	b, _ := json.Marshal(msg)
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub é o coordenador de broadcast: toda mutação aceita sai daqui para todos
// os observadores conectados, sempre como estado completo. Entrega
// fire-and-forget, sem ack: quem reconecta recebe o estado inteiro de novo.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	engine *game.Engine
	bets   *wagering.Ledger
	publ   *producer.KafkaPublisher // opcional (nil desliga)

	mu      sync.RWMutex
	clients map[string]*clientConn

	OnConnect    func() // métrica: gauge++
	OnDisconnect func() // métrica: gauge--
}

// NewHub cria o hub sobre o engine da mesa e o ledger de apostas.
func NewHub(log *zap.Logger, engine *game.Engine, bets *wagering.Ledger, publ *producer.KafkaPublisher) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log:     log,
		engine:  engine,
		bets:    bets,
		publ:    publ,
		clients: make(map[string]*clientConn),
	}
}

func (h *Hub) add(c *clientConn) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	if h.OnConnect != nil {
		h.OnConnect()
	}
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	_, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()
	if ok {
		if h.OnDisconnect != nil {
			h.OnDisconnect()
		}
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão: estado completo na
// entrada, dispatch das mensagens do cliente, remoção na saída.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	c := &clientConn{id: uuid.NewString(), conn: conn}
	h.add(c)
	defer func() {
		h.remove(c.id)
		_ = conn.Close()
	}()

	// observador novo recebe o estado inteiro, não um diff
	_ = c.send(ServerMsg{Type: "initialState", Data: h.engine.Snapshot()})

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(r.Context(), c, msg)
	}
}

func (h *Hub) dispatch(ctx context.Context, c *clientConn, msg ClientMsg) {
	switch msg.Type {
	case "registerPlayer":
		var name string
		if err := json.Unmarshal(msg.Data, &name); err != nil || name == "" {
			return
		}
		list := h.engine.Register(name)
		h.BroadcastPlayersList(list)

	case "takeToken":
		var t TakeTokenMsg
		if err := json.Unmarshal(msg.Data, &t); err != nil {
			return
		}
		upd, err := h.engine.Claim(t.Player, t.RowID, t.Index)
		if err != nil {
			// erro do chamador: só o requisitante fica sabendo
			_ = c.send(ServerMsg{Type: "claimRejected", Data: ErrorMsg{Reason: err.Error()}})
			return
		}
		h.broadcastUpdate(upd)

	case "placeBet":
		var b PlaceBetMsg
		if err := json.Unmarshal(msg.Data, &b); err != nil {
			return
		}
		betID, balance, err := h.bets.PlaceBet(b.UserID, b.MatchID, b.BetType, b.Amount)
		if err != nil {
			h.log.Info("ws bet rejected", zap.String("bettor", b.UserID), zap.Error(err))
			_ = c.send(ServerMsg{Type: "betRejected", Data: ErrorMsg{Reason: err.Error()}})
			return
		}
		placed := events.BetPlaced{
			BetID:   betID,
			UserID:  b.UserID,
			MatchID: b.MatchID,
			BetType: b.BetType,
			Amount:  b.Amount,
			Balance: balance,
		}
		h.BroadcastBetPlaced(placed)
		h.BroadcastStateChanged(h.engine.StateChanged())
		if err := h.publ.PublishBetPlaced(ctx, placed); err != nil {
			h.log.Warn("bet_placed publish failed", zap.Error(err))
		}

	case "updateState":
		var st events.GameState
		if err := json.Unmarshal(msg.Data, &st); err != nil {
			return
		}
		upd, err := h.engine.ApplyExternal(st)
		if errors.Is(err, game.ErrStaleState) {
			// overwrite perdeu a corrida: devolve o estado corrente só pra ele
			_ = c.send(ServerMsg{Type: "stateRejected", Data: h.engine.Snapshot()})
			return
		}
		if err != nil {
			return
		}
		h.broadcastUpdate(upd)
	}
}

// broadcastUpdate traduz o resultado de uma mutação nos eventos de saída.
// Reset é um evento distinto: representa substituição integral do estado,
// não uma mudança incremental.
func (h *Hub) broadcastUpdate(upd game.Update) {
	if upd.Outcome == game.OutcomeReset {
		h.BroadcastGameReset(upd.State)
	}
	h.BroadcastStateChanged(upd.State)
}

// broadcast envia a mensagem para todos os clientes conectados.
func (h *Hub) broadcast(msg ServerMsg) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if err := c.send(msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		}
	}
}

func (h *Hub) BroadcastStateChanged(st events.GameState) {
	h.broadcast(ServerMsg{Type: "stateChanged", Data: st})
}

func (h *Hub) BroadcastGameReset(st events.GameState) {
	h.broadcast(ServerMsg{Type: "gameReset", Data: st})
}

func (h *Hub) BroadcastPlayersList(ids []string) {
	h.broadcast(ServerMsg{Type: "updatePlayersList", Data: ids})
}

func (h *Hub) BroadcastBetPlaced(b events.BetPlaced) {
	h.broadcast(ServerMsg{Type: "betPlaced", Data: b})
}

func (h *Hub) BroadcastMatchesUpdated(upd events.MatchesUpdated) {
	h.broadcast(ServerMsg{Type: "matchesUpdated", Data: upd})
}
