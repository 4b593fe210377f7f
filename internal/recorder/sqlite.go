package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"BandSentinel/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the analyzer writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id        TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT,
			window        INTEGER,
			width_mult    REAL,
			transform     TEXT,
			ratio_hi      REAL,
			ratio_lo      REAL,
			latest_date   TEXT,
			latest_price  REAL,
			latest_z      REAL,
			latest_pos    REAL,
			latest_bucket TEXT,
			break_count   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS horizon_summaries (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			horizon        INTEGER,
			metric         TEXT,
			masked         INTEGER,
			n              INTEGER,
			p50            REAL,
			p25            REAL,
			p10            REAL,
			p05            REAL,
			min            REAL,
			min_entry_date TEXT,
			confidence     TEXT,
			decision_ready INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_run ON horizon_summaries(run_id)`,

		`CREATE TABLE IF NOT EXISTS break_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			idx        INTEGER,
			date       TEXT,
			prev_price REAL,
			price      REAL,
			ratio      REAL,
			direction  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_breaks_run ON break_events(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes one run, its per-horizon summaries, and its break events.
func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := run.Report
	latest := rep.Latest

	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, timestamp, symbol, window, width_mult, transform, ratio_hi, ratio_lo,
		 latest_date, latest_price, latest_z, latest_pos, latest_bucket, break_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.RunID, time.Now().Unix(), rep.Symbol,
		rep.Config.Window, rep.Config.WidthMult, string(rep.Config.Transform),
		rep.Config.RatioHi, rep.Config.RatioLo,
		latest.Date, latest.Price, nullable(latest.Z), nullable(latest.PosClipped),
		latest.Bucket, len(rep.Breaks),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, hr := range rep.Horizons {
		rows := []struct {
			metric  string
			masked  bool
			summary model.SummaryReport
		}{
			{string(model.MetricDrawdown), true, hr.Drawdown.Clean},
			{string(model.MetricDrawdown), false, hr.Drawdown.Raw},
			{string(model.MetricRunup), true, hr.Runup.Clean},
			{string(model.MetricRunup), false, hr.Runup.Raw},
		}
		for _, row := range rows {
			if err := r.insertSummary(run.RunID, hr.Horizon, row.metric, row.masked, row.summary); err != nil {
				return err
			}
		}
	}

	for _, ev := range rep.Breaks {
		_, err := r.db.Exec(`INSERT INTO break_events
			(run_id, idx, date, prev_price, price, ratio, direction)
			VALUES (?,?,?,?,?,?,?)`,
			run.RunID, ev.Index, ev.Date, ev.PrevPrice, ev.Price, ev.Ratio, ev.Direction,
		)
		if err != nil {
			return fmt.Errorf("insert break event: %w", err)
		}
	}

	return nil
}

func (r *SQLiteRecorder) insertSummary(runID string, horizon int, metric string, masked bool, s model.SummaryReport) error {
	var minEntryDate any
	if s.MinAudit != nil {
		minEntryDate = s.MinAudit.EntryDate
	}
	_, err := r.db.Exec(`INSERT INTO horizon_summaries
		(run_id, horizon, metric, masked, n, p50, p25, p10, p05, min, min_entry_date, confidence, decision_ready)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, horizon, metric, masked, s.N,
		nullable(s.P50), nullable(s.P25), nullable(s.P10), nullable(s.P05), nullable(s.Min),
		minEntryDate, string(s.Confidence), s.DecisionReady,
	)
	if err != nil {
		return fmt.Errorf("insert summary h=%d %s: %w", horizon, metric, err)
	}
	return nil
}

// nullable maps a not-computable value to SQL NULL, never to a sentinel.
func nullable(v model.Value) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
