// Package bots keeps the simulated staff members used to exercise the
// dashboard without hardware. The in-memory registry is authoritative for
// the session; every change is mirrored to the store on a best-effort basis.
package bots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrBotNotFound  = errors.New("bot not found")
	ErrUnknownField = errors.New("unknown bot field")
	ErrInvalidName  = errors.New("bot name is required")
)

const Department = "Simulation"

type Field string

const (
	FieldNFC    Field = "nfc"
	FieldMotion Field = "motion"
)

func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldNFC, FieldMotion:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// Mirror is the remote copy of the registry.
type Mirror interface {
	UpsertBot(ctx context.Context, bot models.BotEntry) error
	DeleteBot(ctx context.Context, id string) error
}

// Enqueuer runs an operation asynchronously. *services.Outbox satisfies it.
type Enqueuer interface {
	Enqueue(name string, fn func(ctx context.Context) error) bool
}

type Registry struct {
	mu     sync.RWMutex
	bots   []models.BotEntry
	mirror Mirror
	outbox Enqueuer
	newID  func() (string, error)
	logger zerolog.Logger
}

// NewRegistry creates an empty registry. mirror may be nil when there is
// no store to mirror to.
func NewRegistry(mirror Mirror, outbox Enqueuer, logger zerolog.Logger) *Registry {
	return &Registry{
		mirror: mirror,
		outbox: outbox,
		newID:  newBotID,
		logger: logger.With().Str("component", "bots").Logger(),
	}
}

// newBotID derives the id from a time-ordered UUID so that ids sort by
// creation time.
func newBotID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate bot id: %w", err)
	}
	return "BOT-" + id.String(), nil
}

func DefaultAvatar(id string) string {
	return "https://api.dicebear.com/7.x/bottts/svg?seed=" + id
}

// Load replaces the registry contents, e.g. with the store's copy at start.
func (r *Registry) Load(bots []models.BotEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bots = make([]models.BotEntry, len(bots))
	copy(r.bots, bots)
}

// List returns a copy of the bots in registry order.
func (r *Registry) List() []models.BotEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.BotEntry, len(r.bots))
	copy(out, r.bots)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bots)
}

func (r *Registry) Add(name, avatar string) (models.BotEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.BotEntry{}, ErrInvalidName
	}
	id, err := r.newID()
	if err != nil {
		return models.BotEntry{}, err
	}
	if avatar == "" {
		avatar = DefaultAvatar(id)
	}
	bot := models.BotEntry{
		ID:         id,
		Name:       name,
		Department: Department,
		Avatar:     avatar,
	}

	r.mu.Lock()
	r.bots = append(r.bots, bot)
	r.mu.Unlock()

	r.logger.Info().Str("bot_id", id).Str("name", name).Msg("bot added")
	r.mirrorUpsert(bot)
	return bot, nil
}

// Toggle flips one input of the bot.
func (r *Registry) Toggle(id string, field Field) (models.BotEntry, error) {
	if field != FieldNFC && field != FieldMotion {
		return models.BotEntry{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return r.update(id, func(b *models.BotEntry) {
		if field == FieldNFC {
			b.NFC = !b.NFC
		} else {
			b.Motion = !b.Motion
		}
	})
}

// Reset turns both inputs off.
func (r *Registry) Reset(id string) (models.BotEntry, error) {
	return r.update(id, func(b *models.BotEntry) {
		b.NFC = false
		b.Motion = false
	})
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return ErrBotNotFound
	}
	r.bots = append(r.bots[:idx], r.bots[idx+1:]...)
	r.mu.Unlock()

	r.logger.Info().Str("bot_id", id).Msg("bot deleted")
	if r.mirror != nil && r.outbox != nil {
		r.outbox.Enqueue("delete_bot", func(ctx context.Context) error {
			return r.mirror.DeleteBot(ctx, id)
		})
	}
	return nil
}

func (r *Registry) update(id string, mutate func(*models.BotEntry)) (models.BotEntry, error) {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return models.BotEntry{}, ErrBotNotFound
	}
	mutate(&r.bots[idx])
	bot := r.bots[idx]
	r.mu.Unlock()

	r.logger.Debug().Str("bot_id", id).Bool("nfc", bot.NFC).Bool("motion", bot.Motion).Msg("bot updated")
	r.mirrorUpsert(bot)
	return bot, nil
}

func (r *Registry) indexLocked(id string) int {
	for i := range r.bots {
		if r.bots[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) mirrorUpsert(bot models.BotEntry) {
	if r.mirror == nil || r.outbox == nil {
		return
	}
	r.outbox.Enqueue("upsert_bot", func(ctx context.Context) error {
		return r.mirror.UpsertBot(ctx, bot)
	})
}
