package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    kind                 TEXT PRIMARY KEY,
    payload              TEXT NOT NULL,
    fetched_at           TEXT NOT NULL
);
`
