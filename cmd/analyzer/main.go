package main

import (
	"log"
	"os"

	"github.com/google/uuid"

	"BandSentinel/internal/analysis"
	"BandSentinel/internal/config"
	"BandSentinel/internal/loader"
	"BandSentinel/internal/recorder"
	"BandSentinel/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] BandSentinel starting...")

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

	// Load the price series
	src := loader.NewFileSource(cfg.Input.File, cfg.Input.Format)
	log.Printf("[INFO] data source: %s", src.Name())

	series, err := src.LoadSeries(cfg.Symbol)
	if err != nil {
		log.Fatalf("[FATAL] load series: %v", err)
	}
	log.Printf("[INFO] loaded %d daily points for %s (%d missing)",
		series.Len(), series.Symbol, series.MissingCount())

	// Run the analytics pipeline
	eng := analysis.New(cfg)
	rep := eng.Run(series)
	for _, note := range rep.Diagnostics {
		log.Printf("[WARN] %s", note)
	}

	// Write the report
	if err := report.Write(rep, cfg.Output.File); err != nil {
		log.Fatalf("[FATAL] write report: %v", err)
	}
	if cfg.Output.File != "" {
		log.Printf("[INFO] report written: %s", cfg.Output.File)
	}

	// Record the run
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	runID := uuid.NewString()
	if err := rec.RecordRun(&recorder.RunRecord{RunID: runID, Report: rep}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	log.Printf("[INFO] run %s complete", runID)
}
