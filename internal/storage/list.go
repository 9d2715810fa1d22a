package storage

import (
	"database/sql"
	"time"

	"github.com/codewithboateng/sentrylint/internal/ir"
)

// severity ranking used inline by queries; keep in sync with severity.Rank.
const sevRankSQL = `(CASE severity
  WHEN 'critical' THEN 6 WHEN 'important' THEN 5 WHEN 'moderate' THEN 4
  WHEN 'best-practice' THEN 3 WHEN 'warning-info' THEN 2 ELSE 1 END)`

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.ir_version,
		       (SELECT COUNT(1) FROM findings f WHERE f.run_id = r.id) AS findings
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.IRVersion, &rr.Findings); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListFindings returns findings for a run at or above a minimum severity
// rank (using the severity's own ordering, not the display level).
func (db *DB) ListFindings(runID, minSeverity string) ([]ir.Finding, error) {
	q := `
		SELECT id, rule_id, severity, file_path, start_line, start_char, end_line, end_char, message, snippet
		  FROM findings
		 WHERE run_id = ?
		   AND ` + sevRankSQL + ` >= (CASE ?
		       WHEN 'critical' THEN 6 WHEN 'important' THEN 5 WHEN 'moderate' THEN 4
		       WHEN 'best-practice' THEN 3 WHEN 'warning-info' THEN 2 ELSE 1 END)
		 ORDER BY ` + sevRankSQL + ` DESC, rule_id, file_path, start_line, start_char, id`
	rows, err := db.conn.Query(q, runID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Finding
	for rows.Next() {
		var f ir.Finding
		if err := rows.Scan(&f.ID, &f.RuleID, &f.Severity, &f.FilePath,
			&f.Range.Start.Line, &f.Range.Start.Character,
			&f.Range.End.Line, &f.Range.End.Character,
			&f.Message, &f.Snippet); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// HasRun reports whether a run id exists.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
