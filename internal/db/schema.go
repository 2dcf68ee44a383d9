package db

// SchemaSQL is the complete schema for fresh salondesk installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All
// repository tests load it via GetSchemaSQL(), so a repository referencing
// a column that does not exist here fails immediately with "no such
// column" instead of drifting silently.
//
// The CHECK on resolved_at/timed_out_at encodes the lifecycle invariant:
// a request carries at most one terminal timestamp, never both. The
// UNIQUE on normalized_question encodes the knowledge dedup invariant.
const SchemaSQL = `
-- Help requests (caller escalations)
CREATE TABLE IF NOT EXISTS help_requests (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	customer_name TEXT,
	customer_phone TEXT,
	channel TEXT,
	status TEXT NOT NULL CHECK(status IN ('pending', 'resolved', 'timeout')) DEFAULT 'pending',
	answer TEXT,
	supervisor_name TEXT,
	supervisor_notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	resolved_at DATETIME,
	timed_out_at DATETIME,
	CHECK (resolved_at IS NULL OR timed_out_at IS NULL)
);

CREATE INDEX IF NOT EXISTS idx_help_requests_status ON help_requests(status);
CREATE INDEX IF NOT EXISTS idx_help_requests_created_at ON help_requests(created_at);

-- Knowledge entries (canonical question/answer pairs)
CREATE TABLE IF NOT EXISTS knowledge_entries (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	normalized_question TEXT NOT NULL UNIQUE,
	answer TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	source TEXT NOT NULL CHECK(source IN ('seed', 'human', 'ai')) DEFAULT 'human',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_knowledge_entries_updated_at ON knowledge_entries(updated_at);

-- Schema migrations tracking
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema. Tests use this instead of
// hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
