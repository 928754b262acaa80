package archive

// Schema DDL. Timestamps are stored as fixed-width UTC text so they sort
// chronologically.
const (
	createReadings = `CREATE TABLE IF NOT EXISTS readings (
    id TEXT PRIMARY KEY,
    taken_at TEXT NOT NULL
);`

	createCounterReadings = `CREATE TABLE IF NOT EXISTS counter_readings (
    reading_id TEXT NOT NULL REFERENCES readings(id),
    key TEXT NOT NULL,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (reading_id, key)
);`

	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    url TEXT NOT NULL,
    fetched_at TEXT NOT NULL,
    body TEXT NOT NULL
);`
)

const (
	idxReadingsTakenAt = `CREATE INDEX IF NOT EXISTS idx_readings_taken_at ON readings(taken_at);`
	idxDocumentsTopic  = `CREATE INDEX IF NOT EXISTS idx_documents_topic ON documents(topic, fetched_at);`
)

var schema = []string{
	createReadings,
	createCounterReadings,
	createDocuments,
	idxReadingsTakenAt,
	idxDocumentsTopic,
}
