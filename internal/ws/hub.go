package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"example.com/truco_online/internal/game"
	"example.com/truco_online/internal/table"
)

// ---------- message envelope ----------

type Msg struct {
	T string                 `json:"t"`           // type
	M map[string]interface{} `json:"m,omitempty"` // payload
}

const (
	// client -> server
	msgPlayCard     = "play_card"
	msgSetName      = "set_name"
	msgRequestState = "request_state"
	msgPong         = "pong"

	// server -> client
	msgJoined    = "joined"
	msgState     = "state"
	msgError     = "error"
	msgMatchOver = "match_over"
)

const (
	pingEvery  = 15 * time.Second
	leaveAfter = 5 * time.Second
)

// ---------- hub ----------

type Hub struct {
	log          *zap.Logger
	table        *table.Table
	allowOrigins map[string]bool

	mu      sync.RWMutex
	clients map[string]*Client // player id -> client

	broadcast chan []byte
}

// NewHub connects a hub to tbl. An empty allowlist accepts any origin.
func NewHub(tbl *table.Table, allow []string, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	m := map[string]bool{}
	for _, a := range allow {
		if a != "" {
			m[a] = true
		}
	}
	h := &Hub{
		log:          log,
		table:        tbl,
		allowOrigins: m,
		clients:      map[string]*Client{},
		broadcast:    make(chan []byte, 256),
	}
	tbl.OnStateChanged(h.sendViews)
	tbl.OnMatchOver(h.announceMatchOver)
	return h
}

// Run fans broadcast messages out to every connection until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				c.queue(msg)
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) originAllowed(origin string) bool {
	return origin == "" || len(h.allowOrigins) == 0 || h.allowOrigins[origin]
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
}

func (h *Hub) client(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// ---------- websockets ----------

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !h.originAllowed(r.Header.Get("Origin")) {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.log.Debug("accept failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := newClient(uuid.NewString(), conn)
	log := h.log.With(zap.String("client", client.id))

	// registered before joining so the first published state finds it;
	// joined is queued ahead of that state
	h.register(client)
	defer h.unregister(client)

	seat, err := h.table.Join(ctx, client.id, r.URL.Query().Get("name"), func(seat int) {
		client.seat = seat
		client.send(Msg{T: msgJoined, M: map[string]interface{}{"id": client.id, "seat": seat}})
	})
	if err != nil {
		log.Info("join refused", zap.Error(err))
		h.refuse(ctx, conn, err)
		return
	}
	log.Info("client connected", zap.Int("seat", seat))

	written := make(chan struct{})
	go func() {
		defer close(written)
		client.writeLoop(ctx, log)
	}()

	h.readLoop(ctx, client, log)

	leaveCtx, done := context.WithTimeout(context.Background(), leaveAfter)
	defer done()
	if err := h.table.Leave(leaveCtx, seat); err != nil && !errors.Is(err, table.ErrClosed) {
		log.Warn("leave", zap.Error(err))
	}
	cancel()
	<-written
	log.Info("client disconnected", zap.Int("seat", seat))
}

// refuse tells a client why it cannot sit and closes the connection.
func (h *Hub) refuse(ctx context.Context, conn *websocket.Conn, err error) {
	data, _ := json.Marshal(errorMsg(err))
	wctx, cancel := context.WithTimeout(ctx, leaveAfter)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, data)
	_ = conn.Close(websocket.StatusTryAgainLater, errorCode(err))
}

func (h *Hub) readLoop(ctx context.Context, c *Client, log *zap.Logger) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			log.Debug("read", zap.Error(err))
			return
		}
		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			c.send(errorMsg(badRequest("malformed message")))
			continue
		}

		switch m.T {
		case msgPlayCard:
			card, err := cardFromPayload(m.M)
			if err != nil {
				c.send(errorMsg(err))
				break
			}
			if err := h.table.PlayCard(ctx, c.seat, card); err != nil {
				c.send(errorMsg(err))
			}

		case msgSetName:
			name, _ := m.M["name"].(string)
			if name == "" {
				c.send(errorMsg(badRequest("name is required")))
				break
			}
			if err := h.table.Rename(ctx, c.seat, name); err != nil {
				c.send(errorMsg(err))
			}

		case msgRequestState:
			v, err := h.table.View(ctx, c.seat)
			if err != nil {
				c.send(errorMsg(err))
				break
			}
			c.send(stateMsg(v))

		case msgPong:

		default:
			c.send(errorMsg(badRequest("unknown message type " + m.T)))
		}
	}
}

// sendViews routes each seat's projection to the connection of the player
// sitting there.
func (h *Hub) sendViews(views []game.View) {
	for _, v := range views {
		id := ""
		for _, p := range v.Players {
			if p.Seat == v.Viewer {
				id = p.ID
			}
		}
		if c := h.client(id); c != nil {
			c.send(stateMsg(v))
		}
	}
}

func (h *Hub) announceMatchOver(team int, scores [game.Teams]int) {
	data, err := json.Marshal(Msg{T: msgMatchOver, M: map[string]interface{}{"team": team, "scores": scores}})
	if err != nil {
		h.log.Error("encode match over", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("broadcast queue full, match over dropped")
	}
}

func stateMsg(v game.View) Msg {
	return Msg{T: msgState, M: map[string]interface{}{"state": newStateDTO(v)}}
}

func errorMsg(err error) Msg {
	return Msg{T: msgError, M: map[string]interface{}{"code": errorCode(err), "message": err.Error()}}
}
