package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "preview_events"

// Hub tracks connected editors and fans preview events out to them. With
// redis configured, broadcasts are relayed to every instance.
type Hub struct {
	// editor id -> open sockets (one per tab)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	// closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	rdb *redis.Client

	// origin tag so an instance skips its own relayed broadcasts
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client, 16),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.EditorID] = append(h.clients[client.EditorID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Editor connected", map[string]interface{}{"editor_id": client.EditorID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// drop hands a client to Run for removal. Once Run has stopped the client is
// closed directly.
func (h *Hub) drop(client *Client) {
	select {
	case <-h.done:
		client.close()
		return
	default:
	}
	select {
	case h.unregister <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.EditorID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.EditorID] = append(clients[:i], clients[i+1:]...)
			client.close()
			break
		}
	}
	if len(h.clients[client.EditorID]) == 0 {
		delete(h.clients, client.EditorID)
		h.logger.Info("Hub", "Editor disconnected", map[string]interface{}{"editor_id": client.EditorID})
	}
}

// Broadcast pushes an event to every connected editor.
func (h *Hub) Broadcast(event dto.PreviewEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode preview event", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{Origin: h.instanceID, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// ConnectedEditors reports how many editors hold at least one socket.
func (h *Hub) ConnectedEditors() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type clusterMessage struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	var slow []*Client
	for _, clients := range h.clients {
		for _, client := range clients {
			if !client.enqueue(data) {
				slow = append(slow, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Send buffer full, dropping editor", map[string]interface{}{"editor_id": client.EditorID})
		h.drop(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.Message)
	}
}
