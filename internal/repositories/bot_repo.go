package repositories

import (
	"context"
	"fmt"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBotRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBotRepository(pool *pgxpool.Pool) *PostgresBotRepository {
	return &PostgresBotRepository{pool: pool}
}

// List returns bots in creation order.
func (r *PostgresBotRepository) List(ctx context.Context) ([]models.BotEntry, error) {
	query := `SELECT id, name, department, nfc, motion, avatar
	          FROM bots
	          ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bots: %w", err)
	}
	defer rows.Close()

	bots := []models.BotEntry{}
	for rows.Next() {
		var bot models.BotEntry
		if err := rows.Scan(
			&bot.ID,
			&bot.Name,
			&bot.Department,
			&bot.NFC,
			&bot.Motion,
			&bot.Avatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bot: %w", err)
		}
		bots = append(bots, bot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bots: %w", err)
	}

	return bots, nil
}

// Upsert creates the bot or replaces all of its fields. created_at is kept
// so registry order survives updates.
func (r *PostgresBotRepository) Upsert(ctx context.Context, bot *models.BotEntry) error {
	query := `INSERT INTO bots (id, name, department, nfc, motion, avatar)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE
	          SET name = EXCLUDED.name,
	              department = EXCLUDED.department,
	              nfc = EXCLUDED.nfc,
	              motion = EXCLUDED.motion,
	              avatar = EXCLUDED.avatar,
	              updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		bot.ID,
		bot.Name,
		bot.Department,
		bot.NFC,
		bot.Motion,
		bot.Avatar,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bot: %w", err)
	}
	return nil
}

// Delete removes the bot. Deleting an unknown id is not an error.
func (r *PostgresBotRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM bots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bot: %w", err)
	}
	return nil
}

func (r *PostgresBotRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bots: %w", err)
	}
	return n, nil
}
