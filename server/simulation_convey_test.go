// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/softbear-arena/arenasync/world"
)

// This is the one BDD-style suite named in §2.1's test tooling section,
// covering the Simulation Core's per-tick algorithm end to end.
func TestSimulationCoreTick(t *testing.T) {
	Convey("Given a room with one player", t, func() {
		r := newTestRoom()
		session := addTestSession(r, "p1", world.Vec2{})

		Convey("When a tick passes with no input", func() {
			r.stepPlayers()

			Convey("The player stays put with zero velocity", func() {
				p, _ := r.state.Player("p1")
				So(p.Position, ShouldResemble, world.Vec2{})
				So(p.Velocity, ShouldResemble, world.Vec2{})
			})
		})

		Convey("When the player sends a forward input", func() {
			session.intake.Push(world.Input{Seq: 1, Keys: world.Keys{W: true}})
			r.stepPlayers()

			Convey("Its position moves by exactly PlayerSpeed/TickRate", func() {
				p, _ := r.state.Player("p1")
				So(p.Position.Y, ShouldAlmostEqual, -float64(world.PlayerSpeed)/float64(world.TickRate), 1e-4)
				So(p.LastProcessedSeq, ShouldEqual, 1)
			})
		})

		Convey("When the player shoots", func() {
			r.tryShoot(session, 0)

			Convey("A bullet is admitted", func() {
				So(len(r.state.Bullets), ShouldEqual, 1)
			})

			Convey("A second shot inside the cooldown is refused", func() {
				before := len(r.state.Bullets)
				r.tryShoot(session, 0)
				So(len(r.state.Bullets), ShouldEqual, before)
			})
		})
	})

	Convey("Given two players within lethal range", t, func() {
		r := newTestRoom()
		shooter := addTestSession(r, "shooter", world.Vec2{})
		addTestSession(r, "target", world.Vec2{X: 200})

		Convey("When the shooter fires at the target and the bullet travels", func() {
			r.tryShoot(shooter, 0)
			b := latestBullet(r)

			now := b.SpawnAt
			for i := 0; i < 20; i++ {
				now = now.Add(world.TickPeriod)
				r.stepBullets(now)
			}

			Convey("The target takes exactly BulletDamage", func() {
				target, _ := r.state.Player("target")
				So(target.Health, ShouldEqual, world.MaxHealth-world.BulletDamage)
			})

			Convey("The shooter takes no damage", func() {
				shooterPlayer, _ := r.state.Player("shooter")
				So(shooterPlayer.Health, ShouldEqual, world.MaxHealth)
			})
		})
	})
}
