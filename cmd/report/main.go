package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"CycleBand/internal/collector"
	"CycleBand/internal/config"
	"CycleBand/internal/forecast"
	"CycleBand/internal/indicator"
	"CycleBand/internal/report"
	"CycleBand/internal/store"

	"github.com/mattn/go-isatty"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := false
	windowDays := 0
	for _, arg := range os.Args[1:] {
		if arg == "--debug" {
			debug = true
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			log.Printf("[WARN] invalid window size argument: %s", arg)
			continue
		}
		windowDays = n
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
	if windowDays == 0 {
		windowDays = cfg.Display.WindowDays
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	series, err := st.ReadSeries()
	if err != nil {
		log.Fatalf("[FATAL] read series: %v", err)
	}
	if len(series) == 0 {
		log.Println("[ERROR] no price data in store; run refresh first")
		os.Exit(1)
	}
	if debug {
		log.Printf("[DEBUG] read %d price points from store", len(series))
	}

	avgDaily, err := st.AvgDailyIncrease(365*4 + 1)
	if err != nil {
		log.Printf("[WARN] 4-year average: %v", err)
	}

	derived := indicator.Compute(series)
	window := report.SelectWindow(derived, windowDays)
	if debug {
		log.Printf("[DEBUG] display window: %d rows", len(window))
	}

	r := report.NewRenderer(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
	r.RenderSummary(avgDaily, forecast.CompoundFourYear(avgDaily))
	r.Render(window)

	quotes := collector.NewGeminiFetcher(cfg.Quote.BaseURL, cfg.Quote.Pair, cfg.Proxy)
	if q, err := quotes.FetchQuote(context.Background()); err != nil {
		log.Printf("[WARN] fetch quote from %s: %v", quotes.Name(), err)
	} else {
		r.RenderQuote(q)
	}

	today := time.Now()
	proj := forecast.Project(window, forecast.StepRange, today, forecast.YearEndOf(today))
	r.RenderProjection(proj)
}
