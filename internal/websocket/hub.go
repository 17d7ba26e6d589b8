package chatws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
)

// Hub fans freshly persisted messages out to the live connections of the two
// conversation participants. Clients are keyed by external identity; one
// member may hold several connections.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity string
	send     chan []byte
}

type sender interface {
	SendMessage(ctx context.Context, fromIdentity, toIdentity, body string) (*services.MessageDelivery, error)
}

// Event is the wire shape relayed over the socket, both directions.
type Event struct {
	Type      string `json:"type"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient,omitempty"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, identity string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		identity: identity,
		send:     make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.identity]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.identity] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.identity]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.identity)
			}
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast hands an already-persisted message to the hub for fan-out.
func (h *Hub) Broadcast(event *Event) {
	h.broadcast <- event
}

func (h *Hub) deliver(event *Event) {
	encoded, err := json.Marshal(event)
	if err != nil {
		log.Printf("chat hub encode event: %v", err)
		return
	}

	h.sendTo(event.Sender, encoded)
	if event.Recipient != "" && event.Recipient != event.Sender {
		h.sendTo(event.Recipient, encoded)
	}
}

func (h *Hub) sendTo(identity string, payload []byte) {
	set, ok := h.clients[identity]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, identity)
	}
}

// ReadPump consumes inbound frames, persists each message through the
// messaging service and rebroadcasts the stored copy to both participants.
func (c *Client) ReadPump(service sender) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
			To   string `json:"to"`
			Body string `json:"body"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			writeError(c, "unsupported message type")
			continue
		}

		delivery, err := service.SendMessage(context.Background(), c.identity, incoming.To, incoming.Body)
		if err != nil {
			writeError(c, "failed to send message")
			continue
		}

		c.hub.broadcast <- &Event{
			Type:      "message",
			Sender:    delivery.SenderIdentity,
			Recipient: delivery.RecipientIdentity,
			Body:      delivery.Message.Content,
			Timestamp: services.FormatChatTimestamp(delivery.Message.SentAt),
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(Event{
		Type:      "error",
		Body:      message,
		Timestamp: services.FormatChatTimestamp(time.Now().UTC()),
	})
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
		client.hub.Unregister(client)
	}
}
