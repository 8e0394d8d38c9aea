package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key         TEXT PRIMARY KEY,
    version     INTEGER NOT NULL,
    value       BLOB NOT NULL,
    updated_at  TEXT NOT NULL
);
`
