package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/tweetstats/pkg/analytics"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run represents one recorded processing run.
type Run struct {
	RunID          string
	CreatedAt      time.Time
	Source         string
	SourceSHA256   string
	Output         string
	TotalRecords   int
	KeptRecords    int
	EmptyRecords   int
	ClusterCount   int
	VocabularySize int
	RunDir         string
}

// InsertRun records a run. Re-inserting an existing run ID replaces it.
func (db *DB) InsertRun(r Run) error {
	if r.RunID == "" {
		return errors.New("run ID is empty")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT OR REPLACE INTO runs (run_id, created_at, source, source_sha256, output,
			total_records, kept_records, empty_records, cluster_count, vocabulary_size, run_dir)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Source, r.SourceSHA256, r.Output,
		r.TotalRecords, r.KeptRecords, r.EmptyRecords, r.ClusterCount, r.VocabularySize, r.RunDir)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// InsertClusterTerms stores the top limit words of every cluster in table
// for runID. limit <= 0 stores every word.
func (db *DB) InsertClusterTerms(runID string, table mapreduce.ClusterTable, limit int) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // Rollback error less important than the insert error
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO cluster_terms (run_id, cluster, word, count)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cluster term insert: %w", err)
	}
	defer stmt.Close()

	top := mapreduce.TopByCluster(table, limit)
	for _, label := range table.Labels() {
		for _, wc := range top[label] {
			if _, err = stmt.Exec(runID, label, wc.Word, wc.Count); err != nil {
				return fmt.Errorf("failed to insert cluster term: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cluster terms: %w", err)
	}
	return nil
}

const runColumns = `run_id, created_at, source, source_sha256, output,
	total_records, kept_records, empty_records, cluster_count, vocabulary_size, run_dir`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var r Run
	var createdAt string
	var sha, output, runDir sql.NullString
	if err := row.Scan(&r.RunID, &createdAt, &r.Source, &sha, &output,
		&r.TotalRecords, &r.KeptRecords, &r.EmptyRecords, &r.ClusterCount, &r.VocabularySize, &runDir); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	r.CreatedAt = t
	r.SourceSHA256 = sha.String
	r.Output = output.String
	r.RunDir = runDir.String
	return &r, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, run_id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun retrieves a run by its ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	r, err := scanRun(db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// RunClusters returns the cluster labels stored for a run, ascending.
func (db *DB) RunClusters(runID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT DISTINCT cluster FROM cluster_terms
		WHERE run_id = ?
		ORDER BY cluster
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run clusters: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("failed to scan cluster: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// TopClusterTerms returns the n most frequent stored words of one cluster,
// ordered by count descending then word ascending.
func (db *DB) TopClusterTerms(runID, cluster string, n int) ([]analytics.WordCount, error) {
	rows, err := db.Query(`
		SELECT word, count FROM cluster_terms
		WHERE run_id = ? AND cluster = ?
		ORDER BY count DESC, word ASC
		LIMIT ?
	`, runID, cluster, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster terms: %w", err)
	}
	defer rows.Close()

	var out []analytics.WordCount
	for rows.Next() {
		var wc analytics.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan cluster term: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its cluster terms.
func (db *DB) DeleteRun(runID string) error {
	res, err := db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
