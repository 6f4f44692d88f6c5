// Command tileserve serves a local tile pyramid over HTTP. Point a viewer at
// it with tile_base_url (or WORLDMAP_TILE_BASE_URL).
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/tileserver"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", ".", "directory containing the asset root")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           tileserver.New(cfg, *dir).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Serving %s/%s on %s", *dir, cfg.AssetRoot, *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Error: %v", err)
	}
}
