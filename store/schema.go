package store

// schemaSQL returns the DDL for all tables.
func schemaSQL() string {
	return `
-- One row per pipeline run. HALTED and FAILED rows keep the same shape
-- as SUCCEEDED rows; the failure report is stored as text and the
-- partial state columns stay populated for auditing.
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY,
    person_name TEXT NOT NULL,
    company TEXT,
    pipeline_kind TEXT NOT NULL,
    run_status TEXT NOT NULL DEFAULT 'RUNNING',
    dossier_mode TEXT,
    mode_reason TEXT,
    dossier_text TEXT,
    entity_lock_score INTEGER DEFAULT 0,
    entity_lock_status TEXT,
    visibility_rows INTEGER DEFAULT 0,
    visibility_confidence INTEGER DEFAULT 0,
    evidence_coverage_pct REAL DEFAULT 0,
    has_public_results INTEGER DEFAULT 0,
    failure_message TEXT,
    graph_snapshot JSON,
    qa_report JSON,
    brief JSON,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_runs_person ON runs(person_name);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(run_status);
CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(pipeline_kind);
`
}
