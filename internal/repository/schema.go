package repository

// Schema is the DDL for the evaluation store.
const Schema = `
	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		subject_id TEXT NOT NULL,
		subject_name TEXT NOT NULL DEFAULT '',
		rater_id TEXT NOT NULL,
		rater_name TEXT NOT NULL DEFAULT '',
		total_score REAL NOT NULL,
		period TEXT NOT NULL,
		dimension_scores TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_evaluations_period ON evaluations(period);
`
