// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// SessionID is the opaque identity the server assigns a connection on JOIN.
// Players are keyed by SessionID; a bullet's OwnerID is a SessionID too.
type SessionID string

// BulletID is a per-room monotonic bullet identity, unique for the life of
// the room (never reused, so a stale client reference can never alias a
// different bullet).
type BulletID uint64
