// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/softbear-arena/arenasync/server"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path to config.yaml")
	flag.Parse()

	config, err := server.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("arenasync: config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	room := server.NewRoom(config)
	httpServer := server.NewServer(room, config)

	srv := &http.Server{
		Addr:    config.ListenAddr,
		Handler: httpServer.Router(),
	}

	// errgroup supervises the Room's tick goroutine and the HTTP listener
	// goroutine: a fatal error in either triggers a clean shutdown of both,
	// so a fatal error in one does not leave the other running headless.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		done := make(chan struct{})
		go room.Run(done)
		<-gctx.Done()
		close(done)
		return nil
	})

	g.Go(func() error {
		log.Printf("arenasync: listening on %s", config.ListenAddr)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		select {
		case <-gctx.Done():
			return srv.Shutdown(context.Background())
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("arenasync: %v", err)
	}
}
