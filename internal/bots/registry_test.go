package bots

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inlineOutbox runs operations immediately and records their names.
type inlineOutbox struct {
	mu  sync.Mutex
	ops []string
}

func (o *inlineOutbox) Enqueue(name string, fn func(ctx context.Context) error) bool {
	o.mu.Lock()
	o.ops = append(o.ops, name)
	o.mu.Unlock()
	_ = fn(context.Background())
	return true
}

type fakeMirror struct {
	upserts []models.BotEntry
	deletes []string
	err     error
}

func (m *fakeMirror) UpsertBot(_ context.Context, bot models.BotEntry) error {
	m.upserts = append(m.upserts, bot)
	return m.err
}

func (m *fakeMirror) DeleteBot(_ context.Context, id string) error {
	m.deletes = append(m.deletes, id)
	return m.err
}

func newTestRegistry() (*Registry, *fakeMirror, *inlineOutbox) {
	mirror := &fakeMirror{}
	outbox := &inlineOutbox{}
	return NewRegistry(mirror, outbox, zerolog.Nop()), mirror, outbox
}

func TestRegistry_Add(t *testing.T) {
	reg, mirror, _ := newTestRegistry()

	bot, err := reg.Add("  Bot 6 ", "")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bot.ID, "BOT-"))
	assert.Equal(t, "Bot 6", bot.Name)
	assert.Equal(t, Department, bot.Department)
	assert.False(t, bot.NFC)
	assert.False(t, bot.Motion)
	assert.Equal(t, DefaultAvatar(bot.ID), bot.Avatar)
	assert.Equal(t, []models.BotEntry{bot}, reg.List())
	require.Len(t, mirror.upserts, 1)
	assert.Equal(t, bot, mirror.upserts[0])
}

func TestRegistry_AddGeneratesUniqueOrderedIDs(t *testing.T) {
	reg, _, _ := newTestRegistry()

	var ids []string
	for i := 0; i < 20; i++ {
		bot, err := reg.Add("bot", "avatar")
		require.NoError(t, err)
		ids = append(ids, bot.ID)
	}

	seen := map[string]bool{}
	for i, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		if i > 0 {
			assert.Less(t, ids[i-1], id, "ids should sort by creation time")
		}
	}
}

func TestRegistry_AddRejectsEmptyName(t *testing.T) {
	reg, mirror, _ := newTestRegistry()

	_, err := reg.Add("   ", "")

	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, mirror.upserts)
}

func TestRegistry_Toggle(t *testing.T) {
	reg, mirror, _ := newTestRegistry()
	reg.Load([]models.BotEntry{{ID: "BOT-1"}, {ID: "BOT-2"}})

	bot, err := reg.Toggle("BOT-2", FieldNFC)
	require.NoError(t, err)
	assert.True(t, bot.NFC)
	assert.False(t, bot.Motion)

	bot, err = reg.Toggle("BOT-2", FieldMotion)
	require.NoError(t, err)
	assert.True(t, bot.NFC)
	assert.True(t, bot.Motion)

	bot, err = reg.Toggle("BOT-2", FieldNFC)
	require.NoError(t, err)
	assert.False(t, bot.NFC)

	assert.Equal(t, models.BotEntry{ID: "BOT-1"}, reg.List()[0], "other bots untouched")
	assert.Len(t, mirror.upserts, 3)
}

func TestRegistry_ToggleErrors(t *testing.T) {
	reg, mirror, _ := newTestRegistry()
	reg.Load([]models.BotEntry{{ID: "BOT-1"}})

	_, err := reg.Toggle("BOT-9", FieldNFC)
	assert.ErrorIs(t, err, ErrBotNotFound)

	_, err = reg.Toggle("BOT-1", Field("volume"))
	assert.ErrorIs(t, err, ErrUnknownField)

	assert.Empty(t, mirror.upserts)
}

func TestRegistry_Reset(t *testing.T) {
	reg, _, _ := newTestRegistry()
	reg.Load([]models.BotEntry{{ID: "BOT-1", NFC: true, Motion: true}})

	bot, err := reg.Reset("BOT-1")

	require.NoError(t, err)
	assert.False(t, bot.NFC)
	assert.False(t, bot.Motion)

	_, err = reg.Reset("missing")
	assert.ErrorIs(t, err, ErrBotNotFound)
}

func TestRegistry_Delete(t *testing.T) {
	reg, mirror, outbox := newTestRegistry()
	reg.Load([]models.BotEntry{{ID: "BOT-1"}, {ID: "BOT-2"}, {ID: "BOT-3"}})

	require.NoError(t, reg.Delete("BOT-2"))

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "BOT-1", list[0].ID)
	assert.Equal(t, "BOT-3", list[1].ID)
	assert.Equal(t, []string{"BOT-2"}, mirror.deletes)
	assert.Equal(t, []string{"delete_bot"}, outbox.ops)

	assert.ErrorIs(t, reg.Delete("BOT-2"), ErrBotNotFound)
}

func TestRegistry_MirrorFailureKeepsLocalState(t *testing.T) {
	reg, mirror, _ := newTestRegistry()
	mirror.err = errors.New("store down")

	bot, err := reg.Add("Bot 1", "")
	require.NoError(t, err)

	_, err = reg.Toggle(bot.ID, FieldNFC)
	require.NoError(t, err)

	list := reg.List()
	require.Len(t, list, 1)
	assert.True(t, list[0].NFC)
}

func TestRegistry_WithoutMirror(t *testing.T) {
	reg := NewRegistry(nil, nil, zerolog.Nop())

	bot, err := reg.Add("Bot 1", "a")
	require.NoError(t, err)
	require.NoError(t, reg.Delete(bot.ID))
}

func TestRegistry_ListIsACopy(t *testing.T) {
	reg, _, _ := newTestRegistry()
	reg.Load([]models.BotEntry{{ID: "BOT-1"}})

	list := reg.List()
	list[0].NFC = true

	assert.False(t, reg.List()[0].NFC)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("NFC")
	require.NoError(t, err)
	assert.Equal(t, FieldNFC, f)

	f, err = ParseField(" motion ")
	require.NoError(t, err)
	assert.Equal(t, FieldMotion, f)

	_, err = ParseField("sound")
	assert.ErrorIs(t, err, ErrUnknownField)
}
