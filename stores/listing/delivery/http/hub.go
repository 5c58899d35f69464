package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/swiftbid/base/backoff"
	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/log"
	"github.com/x-xyz/swiftbid/domain/keys"
	"github.com/x-xyz/swiftbid/service/redis"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	// listingId filters events, empty means every listing
	listingId string
	send      chan []byte
}

type broadcastMsg struct {
	listingId string
	payload   []byte
}

// Hub fans listing events received on the redis channel out to websocket clients
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan broadcastMsg
	count      chan chan int
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan broadcastMsg, 256),
		count:      make(chan chan int),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until c is done
func (h *Hub) Run(c ctx.Ctx) {
	defer close(h.done)
	for {
		select {
		case <-c.Done():
			for cl := range h.clients {
				h.drop(cl)
			}
			return
		case cl := <-h.register:
			h.clients[cl] = struct{}{}
		case cl := <-h.unregister:
			h.drop(cl)
		case m := <-h.broadcast:
			for cl := range h.clients {
				if cl.listingId != "" && cl.listingId != m.listingId {
					continue
				}
				select {
				case cl.send <- m.payload:
				default:
					// slow reader
					h.drop(cl)
				}
			}
		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

func (h *Hub) drop(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Broadcast queues payload for clients watching listingId
func (h *Hub) Broadcast(listingId string, payload []byte) {
	select {
	case h.broadcast <- broadcastMsg{listingId: listingId, payload: payload}:
	case <-h.done:
	}
}

// Consume relays messages of the listing events channel to the hub,
// resubscribing with backoff when the subscription drops. It returns when c is done.
func (h *Hub) Consume(c ctx.Ctx, r redis.Service) {
	bo := backoff.NewExponential(time.Second, 30*time.Second)
	for c.Err() == nil {
		msgs, err := r.Subscribe(c, keys.ChannelListingEvents)
		if err != nil {
			c.WithField("err", err).Warn("redis.Subscribe failed")
			if err := bo.Backoff(c); err != nil {
				return
			}
			continue
		}
		bo.Reset()
		for m := range msgs {
			h.Broadcast(listingIdOf(m.Data), m.Data)
		}
	}
}

func listingIdOf(payload []byte) string {
	ev := struct {
		Listing struct {
			Id string `json:"id"`
		} `json:"listing"`
	}{}
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ""
	}
	return ev.Listing.Id
}

// Serve upgrades the request and streams events. ?listingId= narrows the stream to one listing.
func (h *Hub) Serve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctx.WithField("err", err).Warn("websocket upgrade failed")
		return nil
	}

	cl := &client{
		conn:      conn,
		listingId: c.QueryParam("listingId"),
		send:      make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return nil
	}
	ctx.WithFields(log.Fields{"listingId": cl.listingId, "remoteIP": c.RealIP()}).Info("websocket connected")

	go cl.writePump()
	cl.readPump(h)
	return nil
}

// readPump discards client frames and keeps the pong deadline fresh
func (cl *client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (cl *client) writePump() {
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
