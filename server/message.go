// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"strings"
)

type messageType string

var (
	// inboundMessageTypes maps the wire "type" string to the concrete Go
	// type it decodes into, populated by registerInbound at init time.
	inboundMessageTypes = make(map[messageType]reflect.Type)
	// outboundMessageTypes is the inverse, used when marshaling a Send.
	outboundMessageTypes = make(map[reflect.Type]messageType)
)

type (
	// Inbound is a client -> server message (§6).
	Inbound interface {
		// Process applies the message to the room. Called on the room's
		// single simulation goroutine, never concurrently.
		Process(room *Room, session *Session)
	}

	// Outbound is a server -> client message.
	Outbound interface {
		// Pool returns a pooled Outbound to its sync.Pool, if it came
		// from one; a no-op for Outbounds that are never pooled.
		Pool()
	}

	// envelope is the wire shape: {"type": "...", "data": {...}}. Its
	// own MarshalJSON/UnmarshalJSON are overridden by the custom jsoniter
	// codec registered in jsoniter.go.
	envelope struct {
		Type messageType
		Data interface{}
	}

	wireEnvelope struct {
		Type messageType `json:"type"`
		Data interface{} `json:"data"`
	}
)

func (e envelope) wireJSON() wireEnvelope {
	typ, ok := outboundMessageTypes[reflect.TypeOf(e.Data)]
	if !ok {
		panic("invalid outbound message type " + reflect.TypeOf(e.Data).Name())
	}
	return wireEnvelope{Type: typ, Data: e.Data}
}

func (envelope) MarshalJSON() ([]byte, error) {
	panic("overridden by jsoniter custom codec")
}

func (*envelope) UnmarshalJSON([]byte) error {
	panic("overridden by jsoniter custom codec")
}

func uncapitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func registerInbound(values ...Inbound) {
	for _, in := range values {
		val := reflect.ValueOf(in)
		name := messageType(uncapitalize(reflect.Indirect(val).Type().Name()))
		inboundMessageTypes[name] = reflect.Indirect(val).Type()
	}
}

func registerOutbound(values ...Outbound) {
	for _, out := range values {
		val := reflect.ValueOf(out)
		name := messageType(uncapitalize(reflect.Indirect(val).Type().Name()))
		outboundMessageTypes[val.Type()] = name
	}
}
