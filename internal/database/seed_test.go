package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTarget struct {
	staff    []models.StaffEntry
	bots     []models.BotEntry
	countErr error
}

func (m *memTarget) CountStaff(context.Context) (int, error) { return len(m.staff), m.countErr }
func (m *memTarget) CountBots(context.Context) (int, error)  { return len(m.bots), m.countErr }

func (m *memTarget) UpsertStaff(_ context.Context, s *models.StaffEntry) error {
	m.staff = append(m.staff, *s)
	return nil
}

func (m *memTarget) UpsertBot(_ context.Context, b *models.BotEntry) error {
	m.bots = append(m.bots, *b)
	return nil
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()

	require.Len(t, seed.Staff, 1)
	assert.Equal(t, "DEVICE-1", seed.Staff[0].ID)
	require.Len(t, seed.Bots, 5)
	assert.Equal(t, "BOT-1", seed.Bots[0].ID)
	assert.Equal(t, "BOT-5", seed.Bots[4].ID)
	assert.False(t, seed.Bots[2].NFC)
}

func TestParseSeed(t *testing.T) {
	data := []byte(`
staff:
  - id: DEVICE-1
    name: Front Desk Pad
    department: IoT
bots:
  - id: BOT-A
    name: Alice
    nfc: true
`)

	seed, err := ParseSeed(data)

	require.NoError(t, err)
	require.Len(t, seed.Staff, 1)
	assert.Equal(t, "Front Desk Pad", seed.Staff[0].Name)
	assert.Equal(t, string(models.StatusNotWorking), seed.Staff[0].Status)
	require.Len(t, seed.Bots, 1)
	assert.True(t, seed.Bots[0].Entry().NFC)
}

func TestParseSeed_RequiresIDs(t *testing.T) {
	_, err := ParseSeed([]byte("bots:\n  - name: nameless\n"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("staff: [unclosed"))
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed(), seed)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bots:\n  - id: BOT-X\n    name: X\n"), 0o600))
	seed, err = LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed.Bots, 1)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeedApply_OnlyEmptyTables(t *testing.T) {
	target := &memTarget{bots: []models.BotEntry{{ID: "BOT-existing"}}}

	require.NoError(t, DefaultSeed().Apply(context.Background(), target, zerolog.Nop()))

	assert.Len(t, target.staff, 1)
	assert.Len(t, target.bots, 1, "bots table was not empty")

	require.NoError(t, DefaultSeed().Apply(context.Background(), target, zerolog.Nop()))
	assert.Len(t, target.staff, 1, "second apply is a no-op")
}

func TestSeedApply_CountError(t *testing.T) {
	target := &memTarget{countErr: errors.New("db down")}

	err := DefaultSeed().Apply(context.Background(), target, zerolog.Nop())
	assert.Error(t, err)
}
