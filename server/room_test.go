// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"testing"
	"time"

	"github.com/softbear-arena/arenasync/world"
)

func newTestRoom() *Room {
	return NewRoom(Config{MaxClients: 0, ReconnectionGrace: world.ReconnectionGrace, InputRateLimit: world.TickRate})
}

func addTestSession(r *Room, id world.SessionID, spawn world.Vec2) *Session {
	session := newSession(id, r.inputRateLimit)
	r.sessions[id] = &session
	r.state.Players[id] = world.NewPlayer(id, spawn)
	return &session
}

// Scenario 3, "Cooldown": two shots 100ms apart admit exactly one bullet.
func TestRoom_ShootCooldown(t *testing.T) {
	r := newTestRoom()
	shooter := addTestSession(r, "shooter", world.Vec2{})

	t0 := time.Now()
	shooter.lastShot = time.Time{}
	if !shooter.canShoot(t0) {
		t.Fatal("expected first shot admitted")
	}
	if shooter.canShoot(t0.Add(100 * time.Millisecond)) {
		t.Fatal("expected second shot within cooldown to be refused")
	}
	if !shooter.canShoot(t0.Add(world.ShootCooldown + time.Millisecond)) {
		t.Fatal("expected shot after cooldown elapsed to be admitted")
	}
}

// Scenario 4, "Damage-kill": a bullet traveling from (0,0) toward a target
// at (200,0) deals BulletDamage on the tick it reaches hit range, and the
// target is dead after the 25th hit.
func TestRoom_DamageKill(t *testing.T) {
	r := newTestRoom()
	addTestSession(r, "shooter", world.Vec2{})
	addTestSession(r, "target", world.Vec2{X: 200})

	hits := 0
	for hits < world.MaxHealth/world.BulletDamage {
		r.tryShoot(r.sessions["shooter"], 0)
		shooter := r.sessions["shooter"]
		shooter.lastShot = time.Time{} // bypass cooldown between test shots

		b := latestBullet(r)
		now := b.SpawnAt
		for i := 0; i < 200; i++ {
			now = now.Add(world.TickPeriod)
			r.stepBullets(now)
			if _, stillAlive := r.state.Bullets[b.ID]; !stillAlive {
				break
			}
		}

		target, _ := r.state.Player("target")
		hits++
		if target.Health != world.MaxHealth-hits*world.BulletDamage {
			t.Fatalf("after hit %d: expected health %d, got %d", hits, world.MaxHealth-hits*world.BulletDamage, target.Health)
		}
	}

	target, _ := r.state.Player("target")
	if !target.IsDead() {
		t.Fatalf("expected target dead after %d hits, health=%d", hits, target.Health)
	}
}

func latestBullet(r *Room) *world.Bullet {
	var latest *world.Bullet
	for _, b := range r.state.Bullets {
		if latest == nil || b.ID > latest.ID {
			latest = b
		}
	}
	return latest
}

// A bullet never damages its own owner (invariant 2).
func TestRoom_BulletNeverHitsOwner(t *testing.T) {
	r := newTestRoom()
	addTestSession(r, "solo", world.Vec2{})

	r.tryShoot(r.sessions["solo"], 0)
	b := latestBullet(r)

	now := b.SpawnAt
	for i := 0; i < 200; i++ {
		now = now.Add(world.TickPeriod)
		r.stepBullets(now)
	}

	solo, _ := r.state.Player("solo")
	if solo.Health != world.MaxHealth {
		t.Errorf("expected owner untouched, health=%d", solo.Health)
	}
}

// Every bullet is marked for removal within BULLET_MAX_DISTANCE/BULLET_SPEED
// of spawn if nothing else removes it first (invariant 6), and leaves the
// state map BulletRemoveGrace later; the limit allows one extra tick.
func TestRoom_BulletMaxLifetime(t *testing.T) {
	r := newTestRoom()
	addTestSession(r, "shooter", world.Vec2{})

	r.tryShoot(r.sessions["shooter"], 0)
	b := latestBullet(r)

	now := b.SpawnAt
	limit := world.MaxLifetime() + world.BulletRemoveGrace + world.TickPeriod
	elapsed := time.Duration(0)
	for elapsed < limit {
		now = now.Add(world.TickPeriod)
		elapsed += world.TickPeriod
		r.stepBullets(now)
		if _, alive := r.state.Bullets[b.ID]; !alive {
			return
		}
	}
	t.Fatalf("bullet still present after %v, limit was %v", elapsed, limit)
}

// Scenario 5, "Interest cull": far-apart players are mutually invisible;
// once close, they become mutually visible after a refresh.
func TestRoom_InterestCull(t *testing.T) {
	r := newTestRoom()
	addTestSession(r, "a", world.Vec2{X: -750})
	addTestSession(r, "b", world.Vec2{X: 750})

	r.interest.Refresh(r.state)
	av := r.interest.VisiblePlayers("a")
	if _, ok := av["b"]; ok {
		t.Fatal("expected b not visible to a at 1500 apart")
	}

	pa, _ := r.state.Player("a")
	pb, _ := r.state.Player("b")
	pa.Position = world.Vec2{X: -200}
	pb.Position = world.Vec2{X: 200}

	r.interest.Refresh(r.state)
	av = r.interest.VisiblePlayers("a")
	if _, ok := av["b"]; !ok {
		t.Fatal("expected b visible to a at 400 apart")
	}
}

// Dead players' queued inputs are discarded without advancing
// LastProcessedSeq (§4.1).
func TestRoom_DeadPlayerInputsDiscarded(t *testing.T) {
	r := newTestRoom()
	session := addTestSession(r, "s1", world.Vec2{})
	p, _ := r.state.Player("s1")
	p.Damage(world.MaxHealth)

	session.intake.Push(world.Input{Seq: 1, Keys: world.Keys{W: true}})
	r.stepPlayers()

	if p.LastProcessedSeq != 0 {
		t.Errorf("expected lastProcessedSeq unchanged for dead player, got %d", p.LastProcessedSeq)
	}
}

// A room at capacity refuses further registrations (§7).
func TestRoom_RefusesAtCapacity(t *testing.T) {
	r := NewRoom(Config{MaxClients: 1})
	r.clients.Add(&stubClient{})

	refused := &stubClient{}
	r.admit(refused)

	if r.clients.Contains(refused) {
		t.Fatal("expected second client to be refused admission")
	}
	if !refused.destroyed {
		t.Fatal("expected refused client to be destroyed")
	}
}

type stubClient struct {
	ClientData
	destroyed bool
}

func (c *stubClient) Close()            {}
func (c *stubClient) Data() *ClientData { return &c.ClientData }
func (c *stubClient) Destroy()          { c.destroyed = true }
func (c *stubClient) Init()             {}
func (c *stubClient) Send(Outbound)     {}
