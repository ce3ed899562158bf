package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"uctuuctu/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// GameCoordinator is the inbound surface the hub dispatches client events to
type GameCoordinator interface {
	CreateRoom(hostID, name string) *models.Room
	JoinRoom(code, id, name string) error
	Leave(code, id string)
	SetReady(code, id string, ready bool)
	SetSettings(code, requesterID string, roundMs, intermissionMs *int)
	Reset(code, requesterID string)
	StartGame(code string) error
	SubmitAnswer(code, playerID, choice string)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin filtering happens at the CORS middleware; the game carries no credentials
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks connected clients by room and fans outbound events out to
// them. It implements the coordinator's Emitter.
type Hub struct {
	coord GameCoordinator

	mu    sync.RWMutex
	rooms map[string]map[string]*Client // code -> playerID -> client
}

// NewHub creates an empty hub; Bind must be called before serving
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[string]*Client),
	}
}

// Bind attaches the coordinator the hub dispatches inbound events to.
// Hub and coordinator reference each other, so one side binds late.
func (h *Hub) Bind(coord GameCoordinator) {
	h.coord = coord
}

// HandleConnection upgrades an HTTP request and runs the client pumps
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		id:   uuid.New().String(),
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	log.Printf("Client connected: playerID=%s remote=%s", client.id, conn.RemoteAddr())

	go client.writePump()
	client.readPump()
}

// Broadcast sends an event to every member of a room
func (h *Hub) Broadcast(code, event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		log.Printf("broadcast encode failed: event=%s err=%v", event, err)
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[code]))
	for _, c := range h.rooms[code] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	if debug {
		log.Printf("broadcast: code=%s event=%s clients=%d", code, event, len(members))
	}
	for _, c := range members {
		c.enqueue(payload)
	}
}

// SendTo sends an event to a single room member
func (h *Hub) SendTo(code, playerID, event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		log.Printf("send encode failed: event=%s err=%v", event, err)
		return
	}

	h.mu.RLock()
	c := h.rooms[code][playerID]
	h.mu.RUnlock()
	if c != nil {
		c.enqueue(payload)
	}
}

// join registers a client under a room code for outbound fan-out
func (h *Hub) join(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[string]*Client)
	}
	h.rooms[code][c.id] = c
	c.room = code
}

// leave drops a client's room registration
func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c.room == "" {
		return
	}
	delete(h.rooms[c.room], c.id)
	if len(h.rooms[c.room]) == 0 {
		delete(h.rooms, c.room)
	}
	c.room = ""
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
