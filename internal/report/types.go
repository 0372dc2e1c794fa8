package report

import "database/sql"

// #region decision
// Turn decisions written to turn_log.
const (
	DecisionContinue  = "continue"
	DecisionTerminate = "terminate"
)

// #endregion decision

// #region rows
// SessionRow is one sessions row. Summary columns are NULL until the
// session is finished.
type SessionRow struct {
	SessionID       string         `db:"session_id"`
	ScenarioID      string         `db:"scenario_id"`
	CompanyName     string         `db:"company_name"`
	SectorID        string         `db:"sector_id"`
	Kind            string         `db:"kind"`
	InitialTrust    int            `db:"initial_trust"`
	DispositionJSON sql.NullString `db:"disposition_json"`
	StartedAt       string         `db:"started_at"`
	EndedAt         sql.NullString `db:"ended_at"`
	FinalTrust      sql.NullInt64  `db:"final_trust"`
	Tier            sql.NullString `db:"tier"`
	Phase           sql.NullString `db:"phase"`
	Terminated      bool           `db:"terminated"`
	Reason          sql.NullString `db:"reason"`
	Turns           int            `db:"turns"`
	RevealedJSON    sql.NullString `db:"revealed_json"`
	TriggersJSON    sql.NullString `db:"triggers_json"`
}

// TurnRow is one turn_log row.
type TurnRow struct {
	ID          int64          `db:"id"`
	SessionID   string         `db:"session_id"`
	TurnIndex   int            `db:"turn_index"`
	Speaker     string         `db:"speaker"`
	Text        string         `db:"text"`
	SignalsJSON sql.NullString `db:"signals_json"`
	TrustBefore int            `db:"trust_before"`
	TrustAfter  int            `db:"trust_after"`
	Revealed    sql.NullString `db:"revealed_json"`
	Phase       string         `db:"phase"`
	Mode        string         `db:"mode"`
	Decision    string         `db:"decision"`
	Reason      sql.NullString `db:"reason"`
	ElapsedMS   int64          `db:"elapsed_ms"`
	CreatedAt   string         `db:"created_at"`
}

// DiscoveryRow is one discovery_history row.
type DiscoveryRow struct {
	ID              int64          `db:"id"`
	SessionID       string         `db:"session_id"`
	ActionName      string         `db:"action_name"`
	ResponseSummary string         `db:"response_summary"`
	TrustDelta      int            `db:"trust_delta"`
	Bucket          string         `db:"bucket"`
	Fallback        bool           `db:"fallback"`
	Revealed        sql.NullString `db:"revealed_json"`
	CreatedAt       string         `db:"created_at"`
}

// #endregion rows
