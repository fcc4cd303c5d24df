// Package daycache partitions board state by calendar date. Each date's
// payload is fetched once; its partition keeps every edit made while viewing
// that date, so switching away and back restores the board exactly.
package daycache

import (
	"fmt"

	"github.com/julianstephens/tripboard/internal/board"
	"github.com/julianstephens/tripboard/internal/models"
)

// Provider hands out the day payload for a calendar date. An empty date
// means the provider's default/current day.
type Provider interface {
	FetchDay(date string) (models.DayPayload, error)
}

type entry struct {
	payload models.DayPayload
	board   *board.Partition
}

// Session owns the per-date partitions and the active view date. Single
// owner, no internal locking: all access happens on the event loop that
// created it.
type Session struct {
	provider Provider
	entries  map[string]*entry
	viewDate string
}

func NewSession(p Provider) *Session {
	return &Session{
		provider: p,
		entries:  make(map[string]*entry),
	}
}

// ViewDate is the active calendar date, empty before the first load.
func (s *Session) ViewDate() string { return s.viewDate }

// Payload returns the active day's payload.
func (s *Session) Payload() (models.DayPayload, bool) {
	e, ok := s.entries[s.viewDate]
	if !ok {
		return models.DayPayload{}, false
	}
	return e.payload, true
}

// Board returns the active day's partition, nil before the first load.
func (s *Session) Board() *board.Partition {
	e, ok := s.entries[s.viewDate]
	if !ok {
		return nil
	}
	return e.board
}

// SetViewDate makes a date the active partition. A previously viewed date is
// restored from cache without refetching, keeping its edits. A fresh date is
// fetched and seeded; the empty date adopts whatever day the provider's
// default payload reports. A failed fetch leaves the session exactly as it
// was.
func (s *Session) SetViewDate(date string) error {
	if date != "" {
		if _, ok := s.entries[date]; ok {
			s.viewDate = date
			return nil
		}
	}

	payload, err := s.provider.FetchDay(date)
	if err != nil {
		return fmt.Errorf("fetch day %q: %w", date, err)
	}

	effective := date
	if effective == "" {
		effective = payload.Day.DateLocal
	}
	if effective == "" {
		return fmt.Errorf("day payload carries no date")
	}

	// Normalize so the payload agrees with the selected schedule date.
	payload.Day.DateLocal = effective

	s.entries[effective] = &entry{
		payload: payload,
		board:   board.NewPartition(payload),
	}
	s.viewDate = effective
	return nil
}
