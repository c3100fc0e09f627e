// Package notifier pushes real-time events to signed-in users over websockets.
// Connections are grouped by user id, so one event reaches every open tab of
// its recipient and nobody else.
package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run owns client registration until ctx is done, then closes every client.
func (hub *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-hub.register:
			hub.registerClient(client)
		case client := <-hub.unregister:
			hub.unregisterClient(client)
		case <-ctx.Done():
			close(hub.done)
			hub.closeAll()
			return
		}
	}
}

// EmitToUser queues an event for every connection of userID. A client whose
// buffer is full misses the event.
func (hub *Hub) EmitToUser(userID uint, event string, payload interface{}) {
	message := &Message{Event: event, Payload: payload, Time: time.Now()}
	data, err := message.encode()
	if err != nil {
		hub.log.WithError(err).WithField("event", event).Error("cannot encode notification")
		return
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	delivered := 0
	for client := range hub.clients[userID] {
		select {
		case client.send <- data:
			delivered++
		default:
			hub.log.WithFields(logrus.Fields{
				"client_id": client.ID,
				"user_id":   userID,
				"event":     event,
			}).Warn("dropped notification for slow client")
		}
	}

	hub.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"event":     event,
		"delivered": delivered,
	}).Debug("notification emitted")
}

// ClientCount returns the number of open connections for userID.
func (hub *Hub) ClientCount(userID uint) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.clients[userID])
}

func (hub *Hub) registerClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.clients[client.UserID] == nil {
		hub.clients[client.UserID] = make(map[*Client]bool)
	}
	hub.clients[client.UserID][client] = true

	hub.log.WithFields(logrus.Fields{
		"client_id": client.ID,
		"user_id":   client.UserID,
	}).Info("websocket client connected")
}

func (hub *Hub) unregisterClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	conns, ok := hub.clients[client.UserID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(hub.clients, client.UserID)
	}
	close(client.send)

	hub.log.WithFields(logrus.Fields{
		"client_id": client.ID,
		"user_id":   client.UserID,
	}).Info("websocket client disconnected")
}

func (hub *Hub) closeAll() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for _, conns := range hub.clients {
		for client := range conns {
			close(client.send)
		}
	}
	hub.clients = make(map[uint]map[*Client]bool)
}
