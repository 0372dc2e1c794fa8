package report

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/session"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id       TEXT PRIMARY KEY,
	scenario_id      TEXT NOT NULL,
	company_name     TEXT NOT NULL,
	sector_id        TEXT NOT NULL,
	kind             TEXT NOT NULL,
	initial_trust    INTEGER NOT NULL,
	disposition_json TEXT,
	started_at       TEXT NOT NULL,
	ended_at         TEXT,
	final_trust      INTEGER,
	tier             TEXT,
	phase            TEXT,
	terminated       INTEGER NOT NULL DEFAULT 0,
	reason           TEXT,
	turns            INTEGER NOT NULL DEFAULT 0,
	revealed_json    TEXT,
	triggers_json    TEXT,
	info_snapshot    BLOB
);

CREATE TABLE IF NOT EXISTS turn_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	turn_index    INTEGER NOT NULL,
	speaker       TEXT NOT NULL,
	text          TEXT NOT NULL,
	signals_json  TEXT,
	trust_before  INTEGER NOT NULL,
	trust_after   INTEGER NOT NULL,
	revealed_json TEXT,
	phase         TEXT NOT NULL,
	mode          TEXT NOT NULL,
	decision      TEXT NOT NULL,
	reason        TEXT,
	elapsed_ms    INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS discovery_history (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id       TEXT NOT NULL,
	action_name      TEXT NOT NULL,
	response_summary TEXT NOT NULL,
	trust_delta      INTEGER NOT NULL,
	bucket           TEXT NOT NULL,
	fallback         INTEGER NOT NULL,
	revealed_json    TEXT,
	created_at       TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_turn_log_session ON turn_log(session_id, turn_index);
CREATE INDEX IF NOT EXISTS idx_discovery_session ON discovery_history(session_id);
`

// #endregion schema

// #region store-struct
// Store persists session reports in SQLite. It implements session.Recorder.
type Store struct {
	db *sqlx.DB
}

var _ session.Recorder = (*Store)(nil)

// ErrNotFound is returned when a session id has no row.
var ErrNotFound = errors.New("report not found")

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region recorder
// StartSession inserts the session row.
func (s *Store) StartSession(info session.Info) error {
	var dispJSON any
	if info.Disposition != nil {
		b, err := json.Marshal(info.Disposition)
		if err != nil {
			return fmt.Errorf("marshal disposition: %w", err)
		}
		dispJSON = string(b)
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, scenario_id, company_name, sector_id, kind, initial_trust, disposition_json, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.ID, info.Scenario.ID, info.Scenario.CompanyName, info.SectorID, string(info.Scenario.Kind),
		info.InitialTrust, dispJSON, formatTime(info.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordTurn writes a provenance entry for one turn.
func (s *Store) RecordTurn(rec session.TurnRecord) error {
	sigJSON, err := jsonOrNull(rec.Signals)
	if err != nil {
		return fmt.Errorf("marshal signals: %w", err)
	}
	revJSON, err := jsonOrNull(rec.Revealed)
	if err != nil {
		return fmt.Errorf("marshal revealed: %w", err)
	}
	decision, reason := DecisionContinue, ""
	if rec.Termination != nil && rec.Termination.ShouldTerminate {
		decision = DecisionTerminate
		reason = string(rec.Termination.Reason)
		if rec.Termination.Detail != "" {
			reason += ": " + rec.Termination.Detail
		}
	}

	_, err = s.db.Exec(
		`INSERT INTO turn_log (session_id, turn_index, speaker, text, signals_json, trust_before, trust_after,
		                       revealed_json, phase, mode, decision, reason, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Index, string(rec.Speaker), rec.Text, sigJSON, rec.TrustBefore, rec.TrustAfter,
		revJSON, rec.Phase, rec.Mode, decision, nullIfEmpty(reason), rec.Elapsed.Milliseconds(), formatTime(rec.At),
	)
	if err != nil {
		return fmt.Errorf("log turn: %w", err)
	}
	return nil
}

// RecordDiscovery appends one discovery history row.
func (s *Store) RecordDiscovery(rec session.DiscoveryRecord) error {
	revJSON, err := jsonOrNull(rec.Revealed)
	if err != nil {
		return fmt.Errorf("marshal revealed: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO discovery_history (session_id, action_name, response_summary, trust_delta, bucket, fallback, revealed_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Entry.ActionName, rec.Entry.ResponseSummary, rec.Entry.TrustDelta,
		rec.Bucket, rec.Fallback, revJSON, formatTime(rec.Entry.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("log discovery: %w", err)
	}
	return nil
}

// FinishSession writes the summary columns and the information snapshot.
func (s *Store) FinishSession(sum session.Summary) error {
	snap, err := EncodeSnapshot(sum.Information)
	if err != nil {
		return err
	}
	revJSON, err := jsonOrNull(sum.RevealedLayers)
	if err != nil {
		return fmt.Errorf("marshal revealed: %w", err)
	}
	trigJSON, err := jsonOrNull(sum.Triggers)
	if err != nil {
		return fmt.Errorf("marshal triggers: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE sessions SET ended_at = ?, final_trust = ?, tier = ?, phase = ?, terminated = ?, reason = ?,
		        turns = ?, revealed_json = ?, triggers_json = ?, info_snapshot = ?
		 WHERE session_id = ?`,
		formatTime(sum.EndedAt), sum.FinalTrust, sum.Tier, sum.Phase, sum.Terminated, nullIfEmpty(sum.Reason),
		sum.Turns, revJSON, trigJSON, snap, sum.SessionID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish %s: %w", sum.SessionID, ErrNotFound)
	}
	return tx.Commit()
}

// #endregion recorder

// #region queries
const sessionColumns = `session_id, scenario_id, company_name, sector_id, kind, initial_trust, disposition_json,
	started_at, ended_at, final_trust, tier, phase, terminated, reason, turns, revealed_json, triggers_json`

// ListSessions returns the most recent sessions.
func (s *Store) ListSessions(limit int) ([]SessionRow, error) {
	var rows []SessionRow
	err := s.db.Select(&rows,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return rows, nil
}

// GetSession returns one session row.
func (s *Store) GetSession(id string) (SessionRow, error) {
	var row SessionRow
	err := s.db.Get(&row, `SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRow{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return SessionRow{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return row, nil
}

// Turns returns a session's turn log in order.
func (s *Store) Turns(id string) ([]TurnRow, error) {
	var rows []TurnRow
	err := s.db.Select(&rows,
		`SELECT id, session_id, turn_index, speaker, text, signals_json, trust_before, trust_after,
		        revealed_json, phase, mode, decision, reason, elapsed_ms, created_at
		 FROM turn_log WHERE session_id = ? ORDER BY turn_index`, id)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	return rows, nil
}

// Discoveries returns a session's discovery history in order.
func (s *Store) Discoveries(id string) ([]DiscoveryRow, error) {
	var rows []DiscoveryRow
	err := s.db.Select(&rows,
		`SELECT id, session_id, action_name, response_summary, trust_delta, bucket, fallback, revealed_json, created_at
		 FROM discovery_history WHERE session_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list discoveries: %w", err)
	}
	return rows, nil
}

// Snapshot decodes the information snapshot of a finished session.
func (s *Store) Snapshot(id string) (map[string]any, error) {
	var blob []byte
	err := s.db.Get(&blob, `SELECT info_snapshot FROM sessions WHERE session_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	if blob == nil {
		return nil, nil
	}
	return DecodeSnapshot(blob)
}

// #endregion queries

// #region helpers
func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func jsonOrNull(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

// #endregion helpers
