package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS metrics (
    metric_key   TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    domain       TEXT NOT NULL,
    is_expense   INTEGER NOT NULL DEFAULT 0,
    period       TEXT NOT NULL,
    current      REAL NOT NULL DEFAULT 0,
    prior        REAL NOT NULL DEFAULT 0,
    budget       REAL NOT NULL DEFAULT 0,
    forecast     REAL NOT NULL DEFAULT 0,
    otb          REAL NOT NULL DEFAULT 0,
    yesterday    REAL NOT NULL DEFAULT 0,
    position     INTEGER NOT NULL DEFAULT 0,
    updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS periods (
    month        TEXT PRIMARY KEY,
    locked       INTEGER NOT NULL DEFAULT 0,
    locked_at    TEXT
);

CREATE INDEX IF NOT EXISTS idx_metrics_period ON metrics(period);
`
