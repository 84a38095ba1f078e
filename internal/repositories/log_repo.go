package repositories

import (
	"context"
	"fmt"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxRecentLogs is how many rows ListRecent returns at most.
const MaxRecentLogs = 100

type PostgresActivityLogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresActivityLogRepository(pool *pgxpool.Pool) *PostgresActivityLogRepository {
	return &PostgresActivityLogRepository{pool: pool}
}

// Append stores one entry. Logs are append-only; a repeated id is ignored.
func (r *PostgresActivityLogRepository) Append(ctx context.Context, entry *models.ActivityLogEntry) error {
	query := `INSERT INTO activity_logs (id, time, type, staff_id, staff_name, description, location)
	          VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
	          ON CONFLICT (id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Time,
		string(entry.Type),
		entry.StaffID,
		entry.StaffName,
		entry.Description,
		entry.Location,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *PostgresActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	if limit <= 0 || limit > MaxRecentLogs {
		limit = MaxRecentLogs
	}

	query := `SELECT id, time, type, staff_id, staff_name, description, COALESCE(location, '')
	          FROM activity_logs
	          ORDER BY created_at DESC, seq DESC
	          LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	logs := []models.ActivityLogEntry{}
	for rows.Next() {
		var (
			entry models.ActivityLogEntry
			typ   string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Time,
			&typ,
			&entry.StaffID,
			&entry.StaffName,
			&entry.Description,
			&entry.Location,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		entry.Type = models.LogType(typ)
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity logs: %w", err)
	}

	return logs, nil
}
