// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// SocketClient is the websocket Client implementation, a middleman between
// the connection and the Room. Session carries everything transport-agnostic;
// SocketClient adds the conn and the goroutines that actually move bytes.
type SocketClient struct {
	*Session
	room    *Room
	conn    *websocket.Conn
	once    sync.Once
	onClose func()
}

func NewSocketClient(room *Room, conn *websocket.Conn) *SocketClient {
	session := newSession("", room.inputRateLimit)
	return &SocketClient{
		Session: &session,
		room:    room,
		conn:    conn,
	}
}

func (c *SocketClient) Close() {
	close(c.outbox)
	if c.onClose != nil {
		c.onClose()
	}
}

func (c *SocketClient) Destroy() {
	c.once.Do(func() {
		select {
		case c.room.unregister <- c:
		default:
			go func() { c.room.unregister <- c }()
		}
		_ = c.conn.Close()
	})
}

// Init starts the read/write pumps but does not join the Room directly:
// the connection becomes a live session only once its first JOIN message
// arrives and is processed on the room's own goroutine (§6 "Connection
// lifecycle"), which is also what lets a JOIN carrying a prior session id
// resume instead of minting a new Player.
func (c *SocketClient) Init() {
	go c.writePump()
	go c.readPump()
}

func (c *SocketClient) readPump() {
	consented := false
	defer func() {
		c.room.Leave(c.Session, consented)
		c.Destroy()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := c.conn.NextReader()
		if err != nil {
			// A normal-closure close code is the client saying it is
			// intentionally done; anything else (going-away, abnormal,
			// no close frame at all) is treated as a network drop and
			// falls into reconnection grace instead (§6, §7).
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				consented = true
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("arenasync: close error:", err)
			}
			return
		}

		var env envelope
		if err := json.NewDecoder(r).Decode(&env); err != nil {
			// A malformed or unknown message is dropped; the session
			// stays open (§7).
			log.Println("arenasync: decode error:", err)
			continue
		}

		if _, ok := env.Data.(Leave); ok {
			consented = true
		}

		msg, ok := env.Data.(Inbound)
		if !ok {
			continue
		}
		c.room.Dispatch(c.Session, msg)
	}
}

func (c *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		if err := recover(); err != nil {
			log.Println("arenasync: send error:", err)
		}
		pingTicker.Stop()
		c.Destroy()
	}()

	for {
		select {
		case out, ok := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				panic(err)
			}
			if err := json.NewEncoder(w).Encode(envelope{Data: out}); err != nil {
				log.Println("arenasync: encode error:", err)
				panic(err)
			}
			out.Pool()
			if err := w.Close(); err != nil {
				panic(err)
			}
		case <-pingTicker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

