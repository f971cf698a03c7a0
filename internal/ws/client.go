package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"example.com/truco_online/internal/game"
)

type Client struct {
	id   string
	seat int
	conn *websocket.Conn
	out  chan []byte
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{id: id, seat: game.NoSeat, conn: conn, out: make(chan []byte, 64)}
}

// send encodes m and queues it. A slow client loses messages instead of
// stalling the table.
func (c *Client) send(m Msg) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	c.queue(data)
}

func (c *Client) queue(data []byte) {
	select {
	case c.out <- data:
	default:
	}
}

func (c *Client) writeLoop(ctx context.Context, log *zap.Logger) {
	ping := time.NewTicker(pingEvery)
	defer func() {
		ping.Stop()
		_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.out:
			if err := c.conn.Write(ctx, websocket.MessageText, msg); err != nil {
				log.Debug("write", zap.Error(err))
				return
			}
		case <-ping.C:
			if err := c.conn.Ping(ctx); err != nil {
				log.Debug("ping", zap.Error(err))
				return
			}
		}
	}
}
