package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

const staffColumns = `id, name, department, seat_number, email, phone, avatar,
	                 status, last_nfc_scan, motion_activity, total_working_time`

type PostgresStaffRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStaffRepository(pool *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{pool: pool}
}

func (r *PostgresStaffRepository) List(ctx context.Context) ([]models.StaffEntry, error) {
	query := `SELECT ` + staffColumns + `
	          FROM staff
	          ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	staff := []models.StaffEntry{}
	for rows.Next() {
		entry, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		staff = append(staff, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return staff, nil
}

func (r *PostgresStaffRepository) GetByID(ctx context.Context, id string) (*models.StaffEntry, error) {
	query := `SELECT ` + staffColumns + `
	          FROM staff
	          WHERE id = $1`

	entry, err := scanStaff(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff by ID: %w", err)
	}
	return entry, nil
}

// Upsert inserts the row or replaces every column of the existing one.
func (r *PostgresStaffRepository) Upsert(ctx context.Context, staff *models.StaffEntry) error {
	query := `INSERT INTO staff (id, name, department, seat_number, email, phone, avatar,
	                             status, last_nfc_scan, motion_activity, total_working_time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (id) DO UPDATE
	          SET name = EXCLUDED.name,
	              department = EXCLUDED.department,
	              seat_number = EXCLUDED.seat_number,
	              email = EXCLUDED.email,
	              phone = EXCLUDED.phone,
	              avatar = EXCLUDED.avatar,
	              status = EXCLUDED.status,
	              last_nfc_scan = EXCLUDED.last_nfc_scan,
	              motion_activity = EXCLUDED.motion_activity,
	              total_working_time = EXCLUDED.total_working_time,
	              updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		staff.ID,
		staff.Name,
		staff.Department,
		staff.SeatNumber,
		staff.Email,
		staff.Phone,
		staff.Avatar,
		string(staff.Status),
		staff.LastNFCScan,
		staff.MotionActive,
		staff.TotalWorkingTime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert staff: %w", err)
	}
	return nil
}

func (r *PostgresStaffRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return n, nil
}

func scanStaff(row pgx.Row) (*models.StaffEntry, error) {
	var (
		entry  models.StaffEntry
		status string
	)
	err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Department,
		&entry.SeatNumber,
		&entry.Email,
		&entry.Phone,
		&entry.Avatar,
		&status,
		&entry.LastNFCScan,
		&entry.MotionActive,
		&entry.TotalWorkingTime,
	)
	if err != nil {
		return nil, err
	}
	entry.Status = models.PresenceState(status)
	return &entry, nil
}
