// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/softbear-arena/arenasync/world"
)

// Session is the transport-independent, per-connection bookkeeping a Room
// needs regardless of which Client implementation carries the bytes: an
// intake queue, a shoot cooldown, a view set for the Replicator, and
// reconnection-grace tracking. SocketClient embeds it.
type Session struct {
	ClientData

	ID world.SessionID

	intake intakeQueue

	lastShot     time.Time
	connectedAt  time.Time

	// view is the State Replicator's per-session last-sent snapshot,
	// used to compute field deltas and detect first appearance (§4.4).
	view sessionView

	// disconnectedAt is non-zero once a non-consented close is observed;
	// the Room destroys the player once reconnectionGrace has elapsed.
	disconnectedAt time.Time

	// outbox is the transport's write queue. A SocketClient's writePump
	// drains it; Send never blocks the room's simulation goroutine.
	outbox chan Outbound
}

func newSession(id world.SessionID, inputRateLimit float64) Session {
	return Session{
		ID:          id,
		intake:      newIntakeQueue(inputRateLimit),
		connectedAt: time.Now(),
		view:        newSessionView(),
		outbox:      make(chan Outbound, 64),
	}
}

// Send enqueues out for delivery without blocking. A session whose outbox
// is full is assumed wedged; the message is dropped rather than stalling
// every other session's replication this tick.
func (s *Session) Send(out Outbound) {
	select {
	case s.outbox <- out:
	default:
	}
}

// Data exposes the ClientList linkage so Session satisfies part of the
// Client interface; SocketClient embeds *Session and supplies the rest
// (Close, Destroy, Init) that require a live transport.
func (s *Session) Data() *ClientData { return &s.ClientData }

// canShoot reports and, if true, admits a shot under the 200ms per-shooter
// cooldown (§4.1).
func (s *Session) canShoot(now time.Time) bool {
	if now.Sub(s.lastShot) < world.ShootCooldown {
		return false
	}
	s.lastShot = now
	return true
}

func (s *Session) markDisconnected(now time.Time) {
	if s.disconnectedAt.IsZero() {
		s.disconnectedAt = now
	}
}

// reconnectionGraceExpired reports whether grace has elapsed since a
// non-consented disconnect, against the configured grace window rather
// than a fixed constant, since it is set per-Room from Config (§2.1).
func (s *Session) reconnectionGraceExpired(now time.Time, grace time.Duration) bool {
	return !s.disconnectedAt.IsZero() && now.Sub(s.disconnectedAt) >= grace
}

// intakeQueue is the per-session bounded FIFO of pending Inputs (§4.2).
// Bounding addresses §9's flagged OOM risk: a rate.Limiter throttles
// admission and a hard cap drops the OLDEST queued entry (favoring
// newest) rather than growing without bound, while never reordering what
// it does admit.
type intakeQueue struct {
	limiter *rate.Limiter
	pending []world.Input
}

// intakeBurst allows a short burst above the steady admission rate so a
// client that briefly falls behind (e.g. a GC pause) can catch up without
// every excess input being silently dropped.
func intakeBurst(rateLimit float64) int {
	if b := int(rateLimit / 4); b > 0 {
		return b
	}
	return 1
}

// newIntakeQueue builds a queue admitting at most rateLimit inputs per
// second, the value Config.InputRateLimit loads per-Room (§2.1) rather
// than a fixed constant.
func newIntakeQueue(rateLimit float64) intakeQueue {
	return intakeQueue{
		limiter: rate.NewLimiter(rate.Limit(rateLimit), intakeBurst(rateLimit)),
		pending: make([]world.Input, 0, world.TickRate),
	}
}

// Push admits in if the rate limiter allows it, then enforces the
// one-second hard cap by dropping the oldest pending entry.
func (q *intakeQueue) Push(in world.Input) {
	if !q.limiter.Allow() {
		return
	}
	if len(q.pending) >= world.TickRate {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, in)
}

// Drain returns every pending input in send order and empties the queue,
// called once per tick by the Simulation Core (§4.2).
func (q *intakeQueue) Drain() []world.Input {
	if len(q.pending) == 0 {
		return nil
	}
	drained := q.pending
	q.pending = make([]world.Input, 0, world.TickRate)
	return drained
}
