package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per process invocation, keyed by ULID
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,          -- RFC3339Nano, UTC
    source TEXT NOT NULL,
    source_sha256 TEXT,
    output TEXT,
    total_records INTEGER NOT NULL DEFAULT 0,
    kept_records INTEGER NOT NULL DEFAULT 0,
    empty_records INTEGER NOT NULL DEFAULT 0,
    cluster_count INTEGER NOT NULL DEFAULT 0,
    vocabulary_size INTEGER NOT NULL DEFAULT 0,
    run_dir TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_source_hash ON runs(source_sha256);

-- Cluster terms: aggregated word counts per (run, cluster)
CREATE TABLE IF NOT EXISTS cluster_terms (
    run_id TEXT NOT NULL,
    cluster TEXT NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    PRIMARY KEY (run_id, cluster, word)
);

CREATE INDEX IF NOT EXISTS idx_cluster_terms_rank ON cluster_terms(run_id, cluster, count DESC);
`
