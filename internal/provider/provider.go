// Package provider implements the day data providers the board consumes:
// JSON payload files on disk and a SQLite dispatch database. Providers are
// read-only sources of day payloads; board edits never flow back (Seed only
// writes demo data).
package provider

import (
	"strings"

	"github.com/julianstephens/tripboard/internal/models"
)

type Provider interface {
	// FetchDay returns the payload for a calendar date; empty means the
	// provider's default/current day.
	FetchDay(date string) (models.DayPayload, error)

	// Seed writes a payload so the board has data to show.
	Seed(payload models.DayPayload) error

	Close() error
}

// ForPath picks a provider by data path extension, JSON for .json files and
// SQLite otherwise.
func ForPath(path string) Provider {
	if strings.HasSuffix(path, ".json") {
		return NewJSONProvider(path)
	}
	return NewSQLiteProvider(path)
}
