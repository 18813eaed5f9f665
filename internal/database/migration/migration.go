package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Document ids are generated by the application, so no uuid extension is needed.
var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY,
  seq          BIGSERIAL   NOT NULL,
  file_name    TEXT        NOT NULL,
  text_content TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
}

// EnsureMigrated creates the documents schema when the table does not exist
// yet. The check runs on every startup; existing schemas are left untouched,
// there is no versioning or rollback.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()
	logger := migrationLogger{loc: loc, dbHost: dbHost}

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.documents') IS NOT NULL").Scan(&exists); err != nil {
		logger.failure("", time.Since(start), fmt.Sprintf("failed to check sentinel table: %v", err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.event("db_migration_skip", map[string]any{
			"msg":         "schema already exists, skipping migration",
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logger.event("db_migration_start", nil)

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.failure(step.Name, time.Since(start), err.Error())
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		logger.event("db_migration_step", map[string]any{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logger.event("db_migration_success", map[string]any{
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

type migrationLogger struct {
	loc    *time.Location
	dbHost string
}

func (l migrationLogger) event(event string, extra map[string]any) {
	entry := map[string]any{
		"ts":        time.Now().In(l.loc).Format(time.RFC3339Nano),
		"level":     "info",
		"component": "database",
		"event":     event,
		"db_host":   l.dbHost,
	}
	for k, v := range extra {
		entry[k] = v
	}
	l.write(entry)
}

func (l migrationLogger) failure(step string, elapsed time.Duration, msg string) {
	entry := map[string]any{
		"ts":            time.Now().In(l.loc).Format(time.RFC3339Nano),
		"level":         "error",
		"component":     "database",
		"event":         "db_migration_failed",
		"db_host":       l.dbHost,
		"error_message": msg,
		"duration_ms":   elapsed.Milliseconds(),
	}
	if step != "" {
		entry["migration_step"] = step
	}
	l.write(entry)
}

func (l migrationLogger) write(entry map[string]any) {
	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
