// Package status pushes viewer state to websocket clients and takes their input.
package status

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/utils"
)

const (
	INFO = iota
	ERROR
)

const (
	pingPeriod   = 30 * time.Second
	writeTimeout = 40 * time.Second
	readLimit    = 64 * 1024
)

const (
	MESSAGE_STATUS   = "status"
	MESSAGE_SNAPSHOT = "snapshot"
	MESSAGE_HELLO    = "hello"
)

type message struct {
	Kind     string      `json:"kind"`
	Message  string      `json:"message,omitempty"`
	Type     int         `json:"type"`
	Time     time.Time   `json:"time"`
	Snapshot interface{} `json:"snapshot,omitempty"`
}

// request is what a client sends: a key press or a script
type request struct {
	Key    string `json:"key,omitempty"`
	Script string `json:"script,omitempty"`
}

// Input receives client requests
type Input interface {
	Key(key string) error
	RunScript(script []byte) error
}

type client struct {
	hub  *Hub
	name string
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] %s: ws write msg error: %v", c.name, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] %s: ws write ping error: %v", c.name, err)
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(readLimit)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[status] %s: ws read error: %v", c.name, err)
			}
			return
		}

		var req request
		if err := json.Unmarshal(data, &req); err != nil {
			err = errors.Wrapf(err, "Bad request")
			log.Printf("[status] %s: %v", c.name, err)
			c.pushError(err)
			continue
		}

		switch {
		case req.Key != "":
			err = c.hub.input.Key(req.Key)
		case req.Script != "":
			err = c.hub.input.RunScript([]byte(req.Script))
		default:
			err = errors.New("Empty request")
		}
		if err != nil {
			log.Printf("[status] %s: %v", c.name, err)
			c.pushError(err)
		}
	}
}

func (c *client) pushError(err error) {
	c.push(encode(&message{Kind: MESSAGE_STATUS, Message: err.Error(), Type: ERROR, Time: time.Now()}))
}

// push drops the message if the client does not keep up
func (c *client) push(data []byte) {
	if data == nil {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[status] %s: send buffer full, message dropped", c.name)
	}
}

// encode returns nil for values json cannot hold, NaN matrices included
func encode(m *message) []byte {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("[status] Failed to marshal %s message: %v", m.Kind, err)
		return nil
	}
	return data
}

type Hub struct {
	lock      sync.Mutex
	input     Input
	clients   map[*client]bool
	names     utils.RandomNameGenerator
	broadcast chan []byte
	// last snapshot, sent to every new client
	lastSnapshot []byte
}

func NewHub(input Input) *Hub {
	h := &Hub{
		input:     input,
		clients:   make(map[*client]bool),
		broadcast: make(chan []byte, 16),
	}
	go func() {
		for data := range h.broadcast {
			h.lock.Lock()
			for c := range h.clients {
				c.push(data)
			}
			h.lock.Unlock()
		}
	}()
	return h
}

// Serve runs conn until it is closed
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &client{hub: h, conn: conn, send: make(chan []byte, 32)}

	h.lock.Lock()
	c.name = h.names.RandomName()
	h.clients[c] = true
	c.push(encode(&message{Kind: MESSAGE_HELLO, Message: c.name, Time: time.Now()}))
	if h.lastSnapshot != nil {
		c.push(h.lastSnapshot)
	}
	h.lock.Unlock()

	log.Printf("[status] Client %s connected from %v", c.name, conn.RemoteAddr())
	go c.writePump()
	c.readPump()
}

func (h *Hub) unregister(c *client) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		h.names.Release(c.name)
		close(c.send)
		log.Printf("[status] Client %s disconnected", c.name)
	}
}

func (h *Hub) Clients() []string {
	h.lock.Lock()
	defer h.lock.Unlock()
	names := make([]string, 0, len(h.clients))
	for c := range h.clients {
		names = append(names, c.name)
	}
	return names
}

// Publish broadcasts a snapshot and remembers it for late clients
func (h *Hub) Publish(snapshot interface{}) {
	data := encode(&message{Kind: MESSAGE_SNAPSHOT, Time: time.Now(), Snapshot: snapshot})
	if data == nil {
		return
	}
	h.lock.Lock()
	h.lastSnapshot = data
	h.lock.Unlock()
	h.broadcast <- data
}

func (h *Hub) Status(msg string, _type int) {
	h.broadcast <- encode(&message{Kind: MESSAGE_STATUS, Message: msg, Type: _type, Time: time.Now()})
}

func (h *Hub) Info(format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), INFO)
}

func (h *Hub) Error(format string, a ...interface{}) {
	h.Status(fmt.Sprintf(format, a...), ERROR)
}
