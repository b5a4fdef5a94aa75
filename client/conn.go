// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/softbear-arena/arenasync/world"
)

const closeWriteWait = 5 * time.Second

// Conn is a thin client-side wrapper around a gorilla/websocket connection,
// mirroring the wire shape the server's socket_client.go speaks: envelope
// messages of {"type": "...", "data": {...}} (§6).
type Conn struct {
	ws *websocket.Conn
}

// Dial opens a connection to the room's /ws endpoint and sends the initial
// JOIN intent (§6 "Connection lifecycle"). resume is the session id of a
// prior connection to reattach to within its reconnection-grace window;
// pass "" to always start a fresh session.
func Dial(url, room string, resume world.SessionID) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("arenasync: dial: %w", err)
	}
	c := &Conn{ws: ws}
	join := map[string]interface{}{"room": room}
	if resume != "" {
		join["sessionId"] = resume
	}
	if err := c.send("join", join); err != nil {
		_ = ws.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) send(msgType string, data interface{}) error {
	return c.ws.WriteJSON(map[string]interface{}{"type": msgType, "data": data})
}

// SendInput transmits a local prediction input (§4.5 step 5).
func (c *Conn) SendInput(in world.Input) error {
	return c.send("input", map[string]interface{}{
		"seq":   in.Seq,
		"keys":  in.Keys,
		"angle": float32(in.Angle),
	})
}

// SendShoot transmits a fire request.
func (c *Conn) SendShoot(angle world.Angle) error {
	return c.send("shoot", map[string]interface{}{"angle": float32(angle)})
}

// SendPing transmits a keepalive/latency probe.
func (c *Conn) SendPing(nonce uint32) error {
	return c.send("ping", map[string]interface{}{"nonce": nonce})
}

// wireEnvelope mirrors the server's inbound envelope shape for decoding
// STATE_DELTA/KILL/PING/JOINED replies.
type wireEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ReadMessage blocks for the next server message and returns its type tag
// plus raw data for the caller to unmarshal per-type.
func (c *Conn) ReadMessage() (string, json.RawMessage, error) {
	var env wireEnvelope
	if err := c.ws.ReadJSON(&env); err != nil {
		return "", nil, err
	}
	return env.Type, env.Data, nil
}

// Leave tells the server this departure is intentional, so it skips
// reconnection grace and destroys the Player immediately (§6), then
// closes the underlying connection with a normal-closure code as a
// second, transport-level signal of the same intent.
func (c *Conn) Leave() error {
	if err := c.send("leave", struct{}{}); err != nil {
		_ = c.ws.Close()
		return err
	}
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(closeWriteWait))
	return c.ws.Close()
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
