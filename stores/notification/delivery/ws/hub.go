package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/goroutine"
	"github.com/x-xyz/escrowapi/base/log"
	"github.com/x-xyz/escrowapi/domain"
	"github.com/x-xyz/escrowapi/domain/notification"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

type client struct {
	itemId domain.ItemId
	conn   *websocket.Conn
	send   chan []byte
}

// Hub keeps the live subscribers of every item and implements notification.Sink
type Hub struct {
	mu          sync.RWMutex
	subscribers map[domain.ItemId]map[*client]struct{}
	upgrader    websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[domain.ItemId]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Hub) Name() string {
	return "ws"
}

// Publish queues n on every subscriber of its item. A subscriber whose buffer is
// full is disconnected.
func (h *Hub) Publish(c ctx.Ctx, n notification.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": n.EventId}).Error("json.Marshal failed")
		return err
	}

	var slow []*client
	h.mu.RLock()
	for cl := range h.subscribers[n.ItemId] {
		select {
		case cl.send <- data:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range slow {
		c.WithField("itemId", n.ItemId).Warn("dropping slow subscriber")
		h.unregister(cl)
	}
	return nil
}

// Count returns the number of live subscribers of an item
func (h *Hub) Count(id domain.ItemId) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[id])
}

// Serve upgrades the request and streams the notifications of item id until
// the peer goes away
func (h *Hub) Serve(c ctx.Ctx, w http.ResponseWriter, r *http.Request, id domain.ItemId) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "itemId": id}).Error("upgrader.Upgrade failed")
		return err
	}

	cl := &client{
		itemId: id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	h.register(cl)

	goroutine.RecoverableGo(func() { h.writePump(cl) }, goroutine.WithName("ws.writePump"))
	goroutine.RecoverableGo(func() { h.readPump(cl) }, goroutine.WithName("ws.readPump"))
	return nil
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.subscribers
	h.subscribers = make(map[domain.ItemId]map[*client]struct{})
	h.mu.Unlock()

	for _, set := range all {
		for cl := range set {
			close(cl.send)
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subscribers[cl.itemId]
	if !ok {
		set = make(map[*client]struct{})
		h.subscribers[cl.itemId] = set
	}
	set[cl] = struct{}{}
}

// unregister is idempotent, send is closed by whoever removes the client
func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	set := h.subscribers[cl.itemId]
	_, ok := set[cl]
	if ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.subscribers, cl.itemId)
		}
	}
	h.mu.Unlock()

	if ok {
		close(cl.send)
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client input and detects disconnects
func (h *Hub) readPump(cl *client) {
	defer h.unregister(cl)

	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Log().WithFields(log.Fields{"err": err, "itemId": cl.itemId}).Warn("websocket closed")
			}
			return
		}
	}
}
