// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires a Room to HTTP: status/upgrade/metrics endpoints with a
// configurable go-chi/cors allow-list and an enforced per-IP connection
// cap (§2.1, §7).
type Server struct {
	room   *Room
	config Config

	upgrader websocket.Upgrader

	ipMu    sync.Mutex
	ipConns map[string]int
}

func NewServer(room *Room, config Config) *Server {
	return &Server{
		room:   room,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ipConns: make(map[string]int),
	}
}

// Router assembles the three endpoints named in §2.1: GET / (status), GET
// /ws (upgrade), GET /metrics (Prometheus scrape).
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/", s.serveIndex)
	r.Get("/ws", s.serveSocket)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
	})
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	if ip != "" {
		s.ipMu.Lock()
		count := s.ipConns[ip]
		s.ipMu.Unlock()
		if count >= s.config.MaxConnsPerIP {
			http.Error(w, "too many connections", http.StatusTooManyRequests)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	if ip != "" {
		s.ipMu.Lock()
		s.ipConns[ip]++
		s.ipMu.Unlock()
	}

	client := NewSocketClient(s.room, conn)
	if ip != "" {
		client.onClose = func() {
			s.ipMu.Lock()
			s.ipConns[ip]--
			s.ipMu.Unlock()
		}
	}

	s.room.Register(client)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := net.ParseIP(forwarded); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
