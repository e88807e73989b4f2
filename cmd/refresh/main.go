package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CycleBand/internal/collector"
	"CycleBand/internal/config"
	"CycleBand/internal/ingest"
	"CycleBand/internal/scheduler"
	"CycleBand/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	watch := false
	debug := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--watch":
			watch = true
		case "--debug":
			debug = true
		default:
			log.Printf("[WARN] unknown argument: %s", arg)
		}
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	fetcher := collector.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	if debug {
		log.Printf("[DEBUG] data source: %s, symbol: %s, limit: %d",
			fetcher.Name(), cfg.DataSource.Symbol, cfg.DataSource.Limit)
	}

	in := ingest.New(fetcher, st, cfg.DataSource.Symbol, cfg.DataSource.Limit)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := in.Refresh(ctx); err != nil {
		log.Fatalf("[FATAL] refresh: %v", err)
	}
	if !watch {
		return
	}

	sched := scheduler.New(ctx, in)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] watch mode running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping...")
}
