// Command paneld hosts one selection session behind the websocket panel
// bridge: it loads the catalogs, opens the savedata container, restores any
// persisted assignments and serves panel edits until shut down, saving on
// exit.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vehicleselect/internal/dispatch"
	"vehicleselect/internal/host"
	"vehicleselect/internal/host/catalog"
	"vehicleselect/internal/panel"
	auditlog "vehicleselect/internal/persistence/log"
	"vehicleselect/internal/persistence/savedata"
	"vehicleselect/internal/session"
	"vehicleselect/internal/settings"
	"vehicleselect/internal/transport/ws"
)

func main() {
	_ = godotenv.Load()

	var (
		settingsPath = flag.String("settings", "settings.yaml", "settings file path")
		addrFlag     = flag.String("addr", "", "listen address (overrides settings)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[paneld] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Fatalf("load settings: %v", err)
	}
	if env := strings.TrimSpace(os.Getenv("VS_LISTEN_ADDR")); env != "" {
		cfg.ListenAddr = env
	}
	if *addrFlag != "" {
		cfg.ListenAddr = *addrFlag
	}

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	container, err := savedata.Open(cfg.SavePath)
	if err != nil {
		logger.Fatalf("open savedata: %v", err)
	}
	defer container.Close()

	audit := auditlog.NewAuditLogger(cfg.AuditDir)
	defer audit.Close()

	sess, err := session.New(context.Background(), session.Options{
		World:        cat,
		Prefabs:      cat,
		Container:    container,
		Audit:        audit,
		Logger:       logger,
		LegacyImport: cfg.LegacyImport,
	})
	if err != nil {
		logger.Fatalf("start session: %v", err)
	}
	logger.Printf("session %s started, %d assignment entries", sess.ID, sess.Store().Len())

	registry := dispatch.NewRegistry()
	dispatch.RegisterKnown(registry, nil, logger)
	dispatcher := dispatch.New(cat, sess.Store(), cat, registry)
	rand := host.NewRandomizer(uint64(cfg.RandomSeed))

	panels := panel.NewBuilder(cat, cat, sess.Store())
	bridge := ws.NewServer(sess, cat, cat, panels, dispatcher, rand, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/panel", bridge.Handler())

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		logger.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	if err := sess.Save(shutdownCtx); err != nil {
		logger.Printf("save on exit failed: %v", err)
	}
	sess.Close()
	logger.Printf("session %s closed", sess.ID)
}
