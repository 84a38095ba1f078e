package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	presenceKeyPrefix = "staffpad:presence:"
	presenceTTL       = 30 * time.Second // Presence expires when the dashboard stops polling
)

type RedisPresenceRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPresenceRepository(client *redis.Client) *RedisPresenceRepository {
	return &RedisPresenceRepository{client: client, ttl: presenceTTL}
}

// SetPresence stores the presence for a staff entry with automatic TTL.
// The dashboard refreshes it on every successful poll.
func (r *RedisPresenceRepository) SetPresence(ctx context.Context, presence *models.Presence) error {
	if presence.LastSeen.IsZero() {
		presence.LastSeen = time.Now()
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("failed to marshal presence: %w", err)
	}

	key := presenceKey(presence.StaffID)
	err = r.client.Set(ctx, key, data, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set presence: %w", err)
	}

	return nil
}

func (r *RedisPresenceRepository) GetPresence(ctx context.Context, staffID string) (*models.Presence, error) {
	key := presenceKey(staffID)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		// No presence = dashboard has not seen this entry recently
		return offlinePresence(staffID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get presence: %w", err)
	}

	var presence models.Presence
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal presence: %w", err)
	}

	return &presence, nil
}

func (r *RedisPresenceRepository) DeletePresence(ctx context.Context, staffID string) error {
	key := presenceKey(staffID)

	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete presence: %w", err)
	}

	return nil
}

// GetBulkPresence retrieves presence for several staff entries in one MGET.
func (r *RedisPresenceRepository) GetBulkPresence(ctx context.Context, staffIDs []string) (map[string]models.Presence, error) {
	if len(staffIDs) == 0 {
		return make(map[string]models.Presence), nil
	}

	keys := make([]string, len(staffIDs))
	for i, id := range staffIDs {
		keys[i] = presenceKey(id)
	}

	results, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bulk presence: %w", err)
	}

	presenceMap := make(map[string]models.Presence, len(staffIDs))

	for i, result := range results {
		staffID := staffIDs[i]

		data, ok := result.(string)
		if result == nil || !ok {
			presenceMap[staffID] = *offlinePresence(staffID)
			continue
		}

		var presence models.Presence
		if err := json.Unmarshal([]byte(data), &presence); err != nil {
			// If we can't unmarshal, treat as offline
			presenceMap[staffID] = *offlinePresence(staffID)
			continue
		}

		presenceMap[staffID] = presence
	}

	return presenceMap, nil
}

func offlinePresence(staffID string) *models.Presence {
	return &models.Presence{
		StaffID: staffID,
		Status:  models.StatusNotWorking,
		Online:  false,
	}
}

// Helper: build Redis key for presence
func presenceKey(staffID string) string {
	return presenceKeyPrefix + staffID
}
