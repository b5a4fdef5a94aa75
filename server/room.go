// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/softbear-arena/arenasync/world"
)

// Room owns one arena's authoritative GameState and is the only goroutine
// that ever mutates it. register/unregister/inbound are buffered channels
// fed by transport goroutines; everything read from them runs exclusively
// on Room.Run's goroutine.
type Room struct {
	clients ClientList

	state    *world.GameState
	interest *InterestManager
	replica  *Replicator

	sessions map[world.SessionID]*Session
	nextID   uint64

	maxClients        int
	reconnectionGrace time.Duration
	inputRateLimit    float64

	register   chan Client
	unregister chan Client
	inbound    chan inboundEnvelope

	done chan struct{}
}

type inboundEnvelope struct {
	session *Session
	message Inbound
}

func NewRoom(config Config) *Room {
	interest := NewInterestManager()
	return &Room{
		state:             world.NewGameState(),
		interest:          interest,
		replica:           NewReplicator(interest),
		sessions:          make(map[world.SessionID]*Session),
		maxClients:        config.MaxClients,
		reconnectionGrace: config.ReconnectionGrace,
		inputRateLimit:    config.InputRateLimit,
		register:          make(chan Client, 16),
		unregister:        make(chan Client, 16),
		inbound:           make(chan inboundEnvelope, 256),
		done:              make(chan struct{}),
	}
}

// Register queues a newly-connected Client for admission on the room's
// goroutine. Safe to call from any goroutine.
func (r *Room) Register(c Client) { r.register <- c }

// Unregister queues a disconnected Client for removal.
func (r *Room) Unregister(c Client) { r.unregister <- c }

// Dispatch queues an inbound message for processing on the room's
// goroutine, preserving the sender's per-session order (§4.2).
func (r *Room) Dispatch(session *Session, msg Inbound) {
	r.inbound <- inboundEnvelope{session: session, message: msg}
}

// Run drives the room's event loop until stop is closed. Each iteration
// handles exactly one event: a registration, an unregistration, one inbound
// message, an interest refresh (at its own slower cadence), or a tick (which
// steps the simulation and replicates state to every session). Because they
// all run on this one goroutine, registration/shoot admission and the
// tick's physics and replication never interleave mid-step.
func (r *Room) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(world.TickPeriod)
	defer ticker.Stop()

	interestTicker := time.NewTicker(world.VisibilityRefresh)
	defer interestTicker.Stop()

	for {
		select {
		case <-stop:
			close(r.done)
			return
		case c := <-r.register:
			r.admit(c)
		case c := <-r.unregister:
			r.remove(c)
		case env := <-r.inbound:
			env.message.Process(r, env.session)
		case <-interestTicker.C:
			r.interest.Refresh(r.state)
		case <-ticker.C:
			r.tick()
		}
	}
}

// admit links c into the client list and starts its transport, unless the
// room is already at capacity (§7 "Resource exhaustion"). A refused client
// is never Init'ed or added to the room's roster; it is told to Destroy,
// which closes its connection.
func (r *Room) admit(c Client) {
	if r.maxClients > 0 && r.clients.Len >= r.maxClients {
		r.logf("refusing client: room at capacity (%d)", r.maxClients)
		c.Destroy()
		return
	}
	r.clients.Add(c)
	c.Init()
}

func (r *Room) remove(c Client) {
	if r.clients.Contains(c) {
		r.clients.Remove(c)
	}
	c.Close()
}

// newSessionID returns a short random hex id; no database-backed identity
// is needed since persistence and accounts are explicit Non-goals (§2.2).
func newSessionID() world.SessionID {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return world.SessionID(hex.EncodeToString(buf[:]))
}

// Join admits a connection into the arena. If resume names a session still
// within its reconnection grace, the new transport takes over that session
// id and its existing Player body rather than minting a fresh one — the
// manual-reconnection path §4.4 requires. Otherwise a new id and Player are
// assigned and JOINED is sent (§6).
func (r *Room) Join(session *Session, resume world.SessionID) {
	if r.resume(session, resume) {
		return
	}

	session.ID = newSessionID()
	r.sessions[session.ID] = session

	spawn := world.RandomSpawn(func(candidate world.Vec2) bool {
		occupied := false
		r.state.ForEachPlayer(func(p *world.Player) bool {
			if world.CirclesOverlap(candidate, p.Position, 2*world.PlayerRadius) {
				occupied = true
				return false
			}
			return true
		})
		return occupied
	})
	r.state.Players[session.ID] = world.NewPlayer(session.ID, spawn)

	session.Send(&Joined{SessionID: session.ID})
}

// resume reattaches session to a still-grace-pending id, if one exists.
// The old Session's transport is already gone (its outbox closed on
// disconnect); the new Session simply takes its place in r.sessions under
// the same id, and since its own disconnectedAt is zero, reapExpiredSessions
// stops counting down the grace window immediately.
func (r *Room) resume(session *Session, id world.SessionID) bool {
	if id == "" {
		return false
	}
	existing, ok := r.sessions[id]
	if !ok || existing.disconnectedAt.IsZero() {
		return false
	}
	if _, alive := r.state.Player(id); !alive {
		return false
	}

	session.ID = id
	session.lastShot = existing.lastShot
	r.sessions[id] = session

	session.Send(&Joined{SessionID: id})
	return true
}

// Leave ends session's connection. A consented leave (explicit LEAVE
// message or a normal-closure websocket close) destroys the Player
// immediately (§6 "A consensual close removes the player immediately").
// A non-consented leave starts the reconnection grace window instead; its
// Player survives so a brief network blip does not forfeit the body, and
// is reaped by the tick loop once the grace period elapses (§3, §4.4).
func (r *Room) Leave(session *Session, consented bool) {
	if consented {
		delete(r.state.Players, session.ID)
		delete(r.sessions, session.ID)
		return
	}
	session.markDisconnected(time.Now())
}

// tryShoot admits or rejects a Shoot request under the per-shooter cooldown
// and, if admitted, spawns a bullet just in front of the shooter along the
// requested angle (§4.1 "Shoot admission").
func (r *Room) tryShoot(session *Session, angle world.Angle) {
	now := time.Now()
	if !session.canShoot(now) {
		return
	}
	p, ok := r.state.Player(session.ID)
	if !ok || p.IsDead() {
		return
	}

	r.nextID++
	id := world.BulletID(r.nextID)
	spawn := p.Position.Add(world.VecFromAngle(angle).Mul(world.MuzzleOffset))
	bullet := world.NewBullet(id, session.ID, spawn, angle, now)
	r.state.Bullets[id] = bullet

	r.interest.GrantBulletVisibility(id, spawn, r.state)
	metrics.bulletsFired.Inc()
}

// tick runs one fixed timestep of the Simulation Core (§4.1) and then
// replicates the resulting state to every connected session (§4.4).
func (r *Room) tick() {
	start := time.Now()
	r.reapExpiredSessions(start)
	r.stepPlayers()
	r.resolvePlayerCollisions()
	r.stepBullets(start)
	r.replicate()
	metrics.activeSessions.Set(float64(len(r.sessions)))
	metrics.tickDuration.Observe(time.Since(start).Seconds())
}

func (r *Room) reapExpiredSessions(now time.Time) {
	for id, session := range r.sessions {
		if session.reconnectionGraceExpired(now, r.reconnectionGrace) {
			delete(r.state.Players, id)
			delete(r.sessions, id)
		}
	}
}

func (r *Room) stepPlayers() {
	for id, session := range r.sessions {
		p, ok := r.state.Player(id)
		if !ok {
			continue
		}
		drained := session.intake.Drain()

		// A dead player's queued inputs are discarded without advancing
		// lastProcessedSeq: reconciliation only acknowledges inputs that
		// were actually simulated (§4.1).
		if p.IsDead() {
			continue
		}

		applied := false
		for i := range drained {
			// An input at or behind the last applied seq is a duplicate or
			// reorder artifact and is discarded; seqs far in the future
			// are applied normally, with no gap-filling (§7).
			if drained[i].Seq <= p.LastProcessedSeq {
				continue
			}
			world.StepPlayer(p, &drained[i], world.Dt)
			applied = true
		}
		if !applied {
			world.StepPlayer(p, nil, world.Dt)
		}
	}
}

func (r *Room) resolvePlayerCollisions() {
	ids := make([]world.SessionID, 0, len(r.state.Players))
	for id := range r.state.Players {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		a, ok := r.state.Player(ids[i])
		if !ok || a.IsDead() {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			b, ok := r.state.Player(ids[j])
			if !ok || b.IsDead() {
				continue
			}
			world.ResolvePlayerCollision(a, b)
		}
	}
}

// stepBullets advances every live bullet, tests its swept path since last
// tick against every other player's disk, applies damage on hit, and
// schedules removal for hits, max-range, and out-of-bounds bullets
// (§3 Bullet lifecycle, §4.1).
func (r *Room) stepBullets(now time.Time) {
	for id, b := range r.state.Bullets {
		if b.ReadyToForget(now) {
			delete(r.state.Bullets, id)
			r.interest.ForgetBullet(id)
			continue
		}
		if b.MarkedForRemoval() {
			continue
		}

		from := b.PrevTickPos
		to := b.PositionAt(now)
		b.PrevTickPos = to

		if b.DistanceFromSpawn(now) >= world.BulletMaxDistance {
			b.MarkRemove(now)
			continue
		}
		if to.X < -world.ArenaHalf-world.OutOfBoundsMargin || to.X > world.ArenaHalf+world.OutOfBoundsMargin ||
			to.Y < -world.ArenaHalf-world.OutOfBoundsMargin || to.Y > world.ArenaHalf+world.OutOfBoundsMargin {
			b.MarkRemove(now)
			continue
		}

		r.state.ForEachPlayer(func(p *world.Player) bool {
			if p.IsDead() || p.ID == b.OwnerID {
				return true
			}
			if !world.SweptCircleHit(from, to, p.Position, world.HitRadius) {
				return true
			}
			died := p.Damage(world.BulletDamage)
			b.MarkRemove(now)
			if died {
				r.broadcastKill(b.OwnerID, p.ID)
			}
			return false
		})
	}
}

func (r *Room) broadcastKill(killer, target world.SessionID) {
	metrics.kills.Inc()
	for c := r.clients.First; c != nil; c = c.Data().Next {
		c.Send(&Kill{TargetID: target, KillerID: killer})
	}
}

func (r *Room) replicate() {
	for _, session := range r.sessions {
		delta := r.replica.BuildDelta(session, r.state)
		session.Send(delta)
	}
}

func (r *Room) logf(format string, args ...interface{}) {
	log.Printf("[room] "+format, args...)
}
