package provider

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tripboard/internal/models"
)

// JSONProvider serves day payloads from disk. Pointed at a directory it
// looks for "day-<date>.json" per date with "day.json" as the default;
// pointed at a single file it serves that file for every date (the session
// re-dates the payload to the requested day).
type JSONProvider struct {
	path string
}

func NewJSONProvider(path string) *JSONProvider {
	return &JSONProvider{path: path}
}

func (p *JSONProvider) FetchDay(date string) (models.DayPayload, error) {
	for _, file := range p.candidates(date) {
		payload, err := readPayload(file)
		if err == nil {
			return payload, nil
		}
		if !os.IsNotExist(err) {
			return models.DayPayload{}, err
		}
	}
	return models.DayPayload{}, fmt.Errorf("no day payload at %s, run 'tripboard seed' first", p.path)
}

func (p *JSONProvider) candidates(date string) []string {
	info, err := os.Stat(p.path)
	if err != nil || !info.IsDir() {
		return []string{p.path}
	}
	if date == "" {
		return []string{filepath.Join(p.path, "day.json")}
	}
	return []string{
		filepath.Join(p.path, "day-"+date+".json"),
		filepath.Join(p.path, "day.json"),
	}
}

func readPayload(file string) (models.DayPayload, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return models.DayPayload{}, err
	}
	var payload models.DayPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.DayPayload{}, fmt.Errorf("failed to parse day payload %s: %w", file, err)
	}
	return payload, nil
}

// Seed writes the payload as the provider's default day file.
func (p *JSONProvider) Seed(payload models.DayPayload) error {
	file := p.path
	if info, err := os.Stat(p.path); err == nil && info.IsDir() {
		file = filepath.Join(p.path, "day.json")
	} else if filepath.Ext(p.path) != ".json" {
		if err := os.MkdirAll(p.path, 0700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		file = filepath.Join(p.path, "day.json")
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize day payload: %w", err)
	}
	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write day payload: %w", err)
	}
	return nil
}

func (p *JSONProvider) Close() error { return nil }
