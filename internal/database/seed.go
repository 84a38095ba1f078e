package database

import (
	"context"
	"fmt"
	"os"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Seed is the initial content written to an empty store.
type Seed struct {
	Staff []SeedStaff `yaml:"staff"`
	Bots  []SeedBot   `yaml:"bots"`
}

type SeedStaff struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Department       string `yaml:"department"`
	SeatNumber       string `yaml:"seat_number"`
	Email            string `yaml:"email"`
	Phone            string `yaml:"phone"`
	Avatar           string `yaml:"avatar"`
	Status           string `yaml:"status"`
	TotalWorkingTime string `yaml:"total_working_time"`
}

type SeedBot struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
	NFC        bool   `yaml:"nfc"`
	Motion     bool   `yaml:"motion"`
	Avatar     string `yaml:"avatar"`
}

// DefaultSeed is the pad itself plus five idle bots.
func DefaultSeed() Seed {
	seed := Seed{
		Staff: []SeedStaff{{
			ID:               "DEVICE-1",
			Name:             "ESP32 Pad",
			Department:       "IoT",
			SeatNumber:       "Seat 01",
			Email:            "esp32@local",
			Phone:            "N/A",
			Avatar:           "https://api.dicebear.com/7.x/avataaars/svg?seed=ESP32",
			Status:           string(models.StatusNotWorking),
			TotalWorkingTime: "inactive",
		}},
	}
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("BOT-%d", i)
		seed.Bots = append(seed.Bots, SeedBot{
			ID:         id,
			Name:       fmt.Sprintf("Bot %d", i),
			Department: "Simulation",
			Avatar:     "https://api.dicebear.com/7.x/bottts/svg?seed=" + id,
		})
	}
	return seed
}

// LoadSeed reads a YAML seed file; an empty path yields DefaultSeed.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, s := range seed.Staff {
		if s.ID == "" {
			return Seed{}, fmt.Errorf("seed staff #%d: id is required", i+1)
		}
		if s.Status == "" {
			seed.Staff[i].Status = string(models.StatusNotWorking)
		}
	}
	for i, b := range seed.Bots {
		if b.ID == "" {
			return Seed{}, fmt.Errorf("seed bot #%d: id is required", i+1)
		}
	}
	return seed, nil
}

func (s SeedStaff) Entry() models.StaffEntry {
	return models.StaffEntry{
		ID:               s.ID,
		Name:             s.Name,
		Department:       s.Department,
		SeatNumber:       s.SeatNumber,
		Email:            s.Email,
		Phone:            s.Phone,
		Avatar:           s.Avatar,
		Status:           models.PresenceState(s.Status),
		TotalWorkingTime: s.TotalWorkingTime,
	}
}

func (b SeedBot) Entry() models.BotEntry {
	return models.BotEntry{
		ID:         b.ID,
		Name:       b.Name,
		Department: b.Department,
		NFC:        b.NFC,
		Motion:     b.Motion,
		Avatar:     b.Avatar,
	}
}

// SeedTarget is what Apply writes into.
type SeedTarget interface {
	CountStaff(ctx context.Context) (int, error)
	UpsertStaff(ctx context.Context, staff *models.StaffEntry) error
	CountBots(ctx context.Context) (int, error)
	UpsertBot(ctx context.Context, bot *models.BotEntry) error
}

// Apply writes the seed into tables that are still empty. Staff and bots
// are checked independently.
func (s Seed) Apply(ctx context.Context, target SeedTarget, logger zerolog.Logger) error {
	n, err := target.CountStaff(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for _, st := range s.Staff {
			entry := st.Entry()
			if err := target.UpsertStaff(ctx, &entry); err != nil {
				return err
			}
		}
		logger.Info().Int("count", len(s.Staff)).Msg("seeded initial staff data")
	}

	n, err = target.CountBots(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for _, b := range s.Bots {
			bot := b.Entry()
			if err := target.UpsertBot(ctx, &bot); err != nil {
				return err
			}
		}
		logger.Info().Int("count", len(s.Bots)).Msg("seeded initial bots")
	}
	return nil
}
