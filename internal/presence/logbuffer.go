package presence

import "github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"

// LogWindow is the number of entries kept in memory.
const LogWindow = 50

// LogBuffer holds the most recent activity entries, newest first.
type LogBuffer struct {
	entries []models.ActivityLogEntry
}

// Prepend inserts entries at the front, keeping their relative order, and
// truncates to LogWindow.
func (b *LogBuffer) Prepend(entries ...models.ActivityLogEntry) {
	if len(entries) == 0 {
		return
	}
	merged := make([]models.ActivityLogEntry, 0, len(entries)+len(b.entries))
	merged = append(merged, entries...)
	merged = append(merged, b.entries...)
	if len(merged) > LogWindow {
		merged = merged[:LogWindow]
	}
	b.entries = merged
}

// Seed replaces the buffer with history loaded from the store. The input
// must already be newest first.
func (b *LogBuffer) Seed(entries []models.ActivityLogEntry) {
	b.entries = nil
	b.Prepend(entries...)
}

func (b *LogBuffer) Len() int { return len(b.entries) }

// Entries returns a copy of the buffer.
func (b *LogBuffer) Entries() []models.ActivityLogEntry {
	out := make([]models.ActivityLogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// ByType returns the entries of one type, newest first.
func (b *LogBuffer) ByType(t models.LogType) []models.ActivityLogEntry {
	out := []models.ActivityLogEntry{}
	for _, e := range b.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
