package db

import (
	"database/sql"
	"fmt"
)

// RunRecord represents a row in the runs table.
type RunRecord struct {
	ID             int
	PreviousRev    string
	CurrentRev     string
	WorkingDir     string
	FilesProcessed int
	Success        bool
	FailedFile     string
	FailedExitCode *int
	DurationMs     int
	Timestamp      string
}

// RecordRun inserts a completed run and its processed-file list.
func (d *DB) RecordRun(rec RunRecord, files []string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (previous_rev, current_rev, working_dir, files_processed, success, failed_file, failed_exit_code, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PreviousRev, rec.CurrentRev, rec.WorkingDir, rec.FilesProcessed,
		rec.Success, nullString(rec.FailedFile), nullInt(rec.FailedExitCode), rec.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for i, path := range files {
		if _, err := tx.Exec(
			`INSERT INTO run_files (run_id, position, path) VALUES (?, ?, ?)`,
			runID, i, path,
		); err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns up to limit runs, most recent first.
func (d *DB) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := d.conn.Query(
		`SELECT id, previous_rev, current_rev, working_dir, files_processed, success, failed_file, failed_exit_code, duration_ms, timestamp
		 FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var r RunRecord
		var failedFile sql.NullString
		var failedCode sql.NullInt64
		if err := rows.Scan(&r.ID, &r.PreviousRev, &r.CurrentRev, &r.WorkingDir, &r.FilesProcessed,
			&r.Success, &failedFile, &failedCode, &r.DurationMs, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if failedFile.Valid {
			r.FailedFile = failedFile.String
		}
		if failedCode.Valid {
			v := int(failedCode.Int64)
			r.FailedExitCode = &v
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// RunFiles returns the processed-file list for a run, in run order.
func (d *DB) RunFiles(runID int) ([]string, error) {
	rows, err := d.conn.Query(
		`SELECT path FROM run_files WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		files = append(files, path)
	}
	return files, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
