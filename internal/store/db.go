package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-spectra-pipeline/internal/model"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	batchTable := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		spec TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	resultTable := `
	CREATE TABLE IF NOT EXISTS run_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT,
		set_index INTEGER,
		teff REAL, logg REAL, z REAL, mg REAL, ca REAL,
		status TEXT,
		output_path TEXT,
		diagnostic TEXT,
		duration_ms INTEGER,
		created_at DATETIME
	);
	`
	logTable := `
	CREATE TABLE IF NOT EXISTS batch_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch_id TEXT,
		stage TEXT,
		level TEXT,
		message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{batchTable, resultTable, logTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveBatch stores a new batch run with its full spec.
func SaveBatch(batchID string, spec model.BatchSpec) error {
	if db == nil {
		return nil
	}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO batches (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		batchID, specJSON, model.BatchPending, now, now)
	return err
}

// UpdateBatchStatus moves a batch through its lifecycle.
func UpdateBatchStatus(batchID, status string) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`UPDATE batches SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), batchID)
	return err
}

// SaveRunResult persists the outcome of one parameter set.
func SaveRunResult(batchID string, res model.RunResult) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO run_results
		(batch_id, set_index, teff, logg, z, mg, ca, status, output_path, diagnostic, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batchID, res.SetIndex,
		res.Parameters.Teff, res.Parameters.Logg, res.Parameters.Z, res.Parameters.Mg, res.Parameters.Ca,
		string(res.Status), res.OutputPath, res.Diagnostic, res.Duration.Milliseconds(), time.Now().UTC())
	return err
}

// GetBatchResults returns a batch's results ordered by their original
// parameter-set index.
func GetBatchResults(batchID string) ([]model.RunResult, error) {
	rows, err := db.Query(`SELECT set_index, teff, logg, z, mg, ca, status, output_path, diagnostic, duration_ms
		FROM run_results WHERE batch_id = ? ORDER BY set_index ASC`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.RunResult
	for rows.Next() {
		var res model.RunResult
		var status string
		var durationMS int64
		if err := rows.Scan(&res.SetIndex,
			&res.Parameters.Teff, &res.Parameters.Logg, &res.Parameters.Z,
			&res.Parameters.Mg, &res.Parameters.Ca,
			&status, &res.OutputPath, &res.Diagnostic, &durationMS); err != nil {
			return nil, err
		}
		res.Status = model.RunStatus(status)
		res.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, res)
	}
	return results, rows.Err()
}

// ListBatches returns all batches with basic info, newest first.
func ListBatches() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return batches, rows.Err()
}

// GetBatch fetches the full spec and status of one batch.
func GetBatch(batchID string) (map[string]interface{}, error) {
	var specJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM batches WHERE id = ?`, batchID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.BatchSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        batchID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// SaveBatchLog records one batch-level log line.
func SaveBatchLog(batchID, stage, level, message string) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO batch_logs (batch_id, stage, level, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		batchID, stage, level, message, time.Now().UTC())
	return err
}

// GetBatchLogs returns a batch's persisted log lines in insertion order.
func GetBatchLogs(batchID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, level, message, created_at FROM batch_logs WHERE batch_id = ? ORDER BY id ASC`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []map[string]interface{}
	for rows.Next() {
		var stage, level, message string
		var createdAt time.Time
		if err := rows.Scan(&stage, &level, &message, &createdAt); err != nil {
			return nil, err
		}
		logs = append(logs, map[string]interface{}{
			"stage":     stage,
			"level":     level,
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return logs, rows.Err()
}
