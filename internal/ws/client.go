package ws

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"uctuuctu/internal/coordinator"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 32
)

// Client is one websocket connection and its place in a room
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string
	room string
	send chan []byte

	done     chan struct{}
	stopOnce sync.Once
}

// enqueue hands a pre-encoded frame to the write pump, dropping it if the
// client cannot keep up
func (c *Client) enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		log.Printf("send buffer full, dropping frame: playerID=%s", c.id)
	}
}

// sendEvent encodes and enqueues an event for this client only
func (c *Client) sendEvent(event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		log.Printf("send encode failed: event=%s err=%v", event, err)
		return
	}
	c.enqueue(payload)
}

// readPump consumes inbound frames until the connection drops, then treats
// the disconnect as an implicit leave
func (c *Client) readPump() {
	defer c.drop()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error: playerID=%s err=%v", c.id, err)
			}
			return
		}
		c.dispatch(raw)
	}
}

// writePump flushes outbound frames and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// drop tears the client down exactly once: unregister, implicit leave,
// stop the write pump
func (c *Client) drop() {
	c.stopOnce.Do(func() {
		room := c.room
		c.hub.leave(c)
		if room != "" {
			c.hub.coord.Leave(room, c.id)
		}
		close(c.done)
		c.conn.Close()
		log.Printf("Client disconnected: playerID=%s", c.id)
	})
}

// dispatch routes one inbound envelope to the coordinator. Malformed or
// out-of-place events are ignored; only join failures are answered with
// room:error.
func (c *Client) dispatch(raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if debug {
			log.Printf("dispatch: bad envelope from playerID=%s: %v", c.id, err)
		}
		return
	}

	switch env.Event {
	case EventRoomCreate:
		var p CreatePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		name := strings.TrimSpace(p.Name)
		if name == "" || c.room != "" {
			return
		}
		snap := c.hub.coord.CreateRoom(c.id, name)
		c.hub.join(c, snap.Code)
		c.sendEvent(coordinator.EventRoomState, snap)

	case EventRoomJoin:
		var p JoinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		code := strings.TrimSpace(p.Code)
		name := strings.TrimSpace(p.Name)
		if code == "" || name == "" || c.room != "" {
			return
		}
		// register before the coordinator broadcasts so the join
		// announcements reach the new member too
		c.hub.join(c, code)
		if err := c.hub.coord.JoinRoom(code, c.id, name); err != nil {
			c.hub.leave(c)
			c.sendEvent(coordinator.EventRoomError, coordinator.ErrorPayload{Message: err.Error()})
		}

	case EventRoomReady:
		var p ReadyPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		c.hub.coord.SetReady(c.room, c.id, p.Ready)

	case EventRoomLeave:
		room := c.room
		c.hub.leave(c)
		if room != "" {
			c.hub.coord.Leave(room, c.id)
		}

	case EventGameStart:
		if err := c.hub.coord.StartGame(c.room); err != nil && debug {
			log.Printf("start declined: code=%s playerID=%s err=%v", c.room, c.id, err)
		}

	case EventRoundAnswer:
		var p AnswerPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		c.hub.coord.SubmitAnswer(c.room, c.id, p.Choice)

	case EventRoomSettings:
		var p SettingsPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		c.hub.coord.SetSettings(c.room, c.id, p.RoundMs, p.IntermissionMs)

	case EventRoomReset:
		c.hub.coord.Reset(c.room, c.id)

	default:
		if debug {
			log.Printf("dispatch: unknown event %q from playerID=%s", env.Event, c.id)
		}
	}
}
