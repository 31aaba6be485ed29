package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
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

	// WAL mode so dashboards can read while the bot writes.
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
		`CREATE TABLE IF NOT EXISTS signal_checks (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			side      TEXT,
			rsi       REAL,
			entry     INTEGER,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_checks(timestamp)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			side            TEXT,
			symbol          TEXT,
			quantity        INTEGER,
			limit_price     REAL,
			stop_loss       REAL,
			target          REAL,
			trailing_stop   REAL,
			status          TEXT,
			broker_order_id TEXT,
			reason          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(timestamp)`,

		`CREATE TABLE IF NOT EXISTS ledger_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			side         TEXT,
			count        INTEGER,
			max_per_side INTEGER,
			event_type   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_ts ON ledger_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignalCheck(evt *SignalCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := 0
	if evt.Entry {
		entry = 1
	}
	_, err := r.db.Exec(`INSERT INTO signal_checks (timestamp, side, rsi, entry, note)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), string(evt.Side), evt.RSI, entry, evt.Note,
	)
	return err
}

func (r *SQLiteRecorder) RecordOrder(evt *OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO orders
		(timestamp, side, symbol, quantity, limit_price, stop_loss, target, trailing_stop, status, broker_order_id, reason)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), string(evt.Side), evt.Symbol, evt.Quantity,
		evt.LimitPrice, evt.StopLoss, evt.Target, evt.TrailingStop,
		evt.Status, evt.BrokerOrderID, evt.Reason,
	)
	return err
}

func (r *SQLiteRecorder) RecordLedgerEvent(evt *LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO ledger_events (timestamp, side, count, max_per_side, event_type)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), string(evt.Side), evt.Count, evt.MaxPerSide, evt.EventType,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
