// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

// Client is a transport-level actor on the Room. A Session (session.go) is
// the one implementation that matters here — the interface exists so the
// Room's register/unregister/send plumbing does not need to know it is
// talking to a *Session specifically.
type Client interface {
	// Close releases transport resources. Always called on the room's
	// simulation goroutine.
	Close()

	// Data exposes the doubly-linked-list bookkeeping.
	Data() *ClientData

	// Destroy requests removal from the room. The Client itself calls this
	// (e.g. on transport error), and the Room calls it on a client it
	// refuses at capacity.
	Destroy()

	// Init starts the transport's read/write goroutines. Always called
	// on the room's simulation goroutine.
	Init()

	// Send enqueues an Outbound for delivery. Never blocks the caller.
	Send(out Outbound)
}

// ClientData is embedded by every Client implementation so it can be
// linked into a ClientList.
type ClientData struct {
	Room     *Room
	Previous Client
	Next     Client
	added    bool
}

// ClientList is an intrusive doubly-linked list of Clients, iterated as:
//
//	for c := list.First; c != nil; c = c.Data().Next { ... }
//
// or, to remove every element while iterating:
//
//	for c := list.First; c != nil; c = list.Remove(c) { ... }
type ClientList struct {
	First Client
	Last  Client
	Len   int
}

// Contains reports whether client is currently linked into this list.
func (list *ClientList) Contains(client Client) bool {
	return client.Data().added
}

func (list *ClientList) Add(client Client) {
	data := client.Data()
	if data.added {
		panic("client already added to a list")
	}

	if list.First == nil {
		list.First = client
	} else {
		list.Last.Data().Next = client
		data.Previous = list.Last
	}
	list.Last = client
	list.Len++
	data.added = true
}

// Remove removes client from the list and returns the next element.
func (list *ClientList) Remove(client Client) (next Client) {
	data := client.Data()
	data.added = false

	if data.Previous != nil {
		data.Previous.Data().Next = data.Next
	} else if list.First == client {
		list.First = data.Next
	} else {
		panic("client already removed")
	}

	if data.Next != nil {
		data.Next.Data().Previous = data.Previous
	} else if list.Last == client {
		list.Last = data.Previous
	} else {
		panic("client already removed")
	}

	list.Len--
	next = data.Next
	data.Next = nil
	data.Previous = nil
	return next
}
