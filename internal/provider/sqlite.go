package provider

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tripboard/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS org (
	org_id   TEXT PRIMARY KEY,
	timezone TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS day (
	date_local         TEXT PRIMARY KEY,
	start_time_local   TEXT NOT NULL,
	slot_minutes       INTEGER NOT NULL,
	slots_per_day_view INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS vehicle (
	vehicle_id        TEXT PRIMARY KEY,
	unit_number       TEXT NOT NULL,
	is_out_of_service INTEGER NOT NULL DEFAULT 0,
	display_order     INTEGER NOT NULL DEFAULT 0,
	drivers           TEXT NOT NULL DEFAULT '[]',
	capabilities      TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS trip (
	trip_id    TEXT PRIMARY KEY,
	date_local TEXT NOT NULL,
	queue      TEXT NOT NULL,
	data       TEXT NOT NULL
);
`

// SQLiteProvider serves day payloads from a dispatch database. Vehicles and
// the organization are shared across days; trips hang off a day row by date.
type SQLiteProvider struct {
	path string
	db   *sql.DB
}

func NewSQLiteProvider(path string) *SQLiteProvider {
	return &SQLiteProvider{path: path}
}

func (p *SQLiteProvider) open() error {
	if p.db != nil {
		return nil
	}
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return fmt.Errorf("no dispatch database at %s, run 'tripboard seed' first", p.path)
	}
	db, err := sql.Open("sqlite", p.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	p.db = db
	return nil
}

func (p *SQLiteProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLiteProvider) FetchDay(date string) (models.DayPayload, error) {
	var payload models.DayPayload

	if err := p.open(); err != nil {
		return payload, err
	}

	err := p.db.QueryRow(`SELECT org_id, timezone FROM org LIMIT 1`).
		Scan(&payload.Org.OrgID, &payload.Org.Timezone)
	if err != nil {
		return payload, fmt.Errorf("failed to load organization: %w", err)
	}

	day, err := p.loadDay(date)
	if err != nil {
		return payload, err
	}
	payload.Day = day

	vehicles, err := p.loadVehicles()
	if err != nil {
		return payload, err
	}
	payload.Vehicles = vehicles

	if err := p.loadTrips(day.DateLocal, &payload); err != nil {
		return payload, err
	}

	return payload, nil
}

// loadDay returns the requested day row, falling back to the default (first)
// day when the date is empty or has no row of its own. The session re-dates
// fallback payloads to the requested day.
func (p *SQLiteProvider) loadDay(date string) (models.DayDescriptor, error) {
	var d models.DayDescriptor

	if date != "" {
		err := p.db.QueryRow(
			`SELECT date_local, start_time_local, slot_minutes, slots_per_day_view FROM day WHERE date_local = ?`, date).
			Scan(&d.DateLocal, &d.StartTimeLocal, &d.SlotMinutes, &d.SlotsPerDayView)
		if err == nil {
			return d, nil
		}
		if err != sql.ErrNoRows {
			return d, fmt.Errorf("failed to load day %s: %w", date, err)
		}
	}

	err := p.db.QueryRow(
		`SELECT date_local, start_time_local, slot_minutes, slots_per_day_view FROM day ORDER BY date_local LIMIT 1`).
		Scan(&d.DateLocal, &d.StartTimeLocal, &d.SlotMinutes, &d.SlotsPerDayView)
	if err != nil {
		return d, fmt.Errorf("failed to load default day: %w", err)
	}
	return d, nil
}

func (p *SQLiteProvider) loadVehicles() ([]models.Vehicle, error) {
	rows, err := p.db.Query(
		`SELECT vehicle_id, unit_number, is_out_of_service, display_order, drivers, capabilities FROM vehicle`)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		var oos int
		var drivers, capabilities string
		if err := rows.Scan(&v.VehicleID, &v.UnitNumber, &oos, &v.DisplayOrder, &drivers, &capabilities); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		v.IsOutOfService = oos != 0
		if err := json.Unmarshal([]byte(drivers), &v.Drivers); err != nil {
			return nil, fmt.Errorf("bad drivers list for vehicle %s: %w", v.VehicleID, err)
		}
		if err := json.Unmarshal([]byte(capabilities), &v.Capabilities); err != nil {
			return nil, fmt.Errorf("bad capabilities list for vehicle %s: %w", v.VehicleID, err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (p *SQLiteProvider) loadTrips(date string, payload *models.DayPayload) error {
	rows, err := p.db.Query(`SELECT queue, data FROM trip WHERE date_local = ?`, date)
	if err != nil {
		return fmt.Errorf("failed to load trips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var queue, data string
		if err := rows.Scan(&queue, &data); err != nil {
			return fmt.Errorf("failed to scan trip: %w", err)
		}
		var trip models.Trip
		if err := json.Unmarshal([]byte(data), &trip); err != nil {
			return fmt.Errorf("bad trip record: %w", err)
		}
		switch models.QueueName(queue) {
		case models.QueueIncoming:
			payload.IncomingRequests = append(payload.IncomingRequests, trip)
		case models.QueueWillCall:
			payload.WillCallTrips = append(payload.WillCallTrips, trip)
		default:
			payload.UnassignedTrips = append(payload.UnassignedTrips, trip)
		}
	}
	return rows.Err()
}

// Seed creates the schema and writes the payload's org, day, vehicles and
// queue trips.
func (p *SQLiteProvider) Seed(payload models.DayPayload) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if p.db == nil {
		db, err := sql.Open("sqlite", p.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		p.db = db
	}

	if _, err := p.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO org (org_id, timezone) VALUES (?, ?)`,
		payload.Org.OrgID, payload.Org.Timezone); err != nil {
		return fmt.Errorf("failed to seed organization: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO day (date_local, start_time_local, slot_minutes, slots_per_day_view) VALUES (?, ?, ?, ?)`,
		payload.Day.DateLocal, payload.Day.StartTimeLocal, payload.Day.SlotMinutes, payload.Day.SlotsPerDayView); err != nil {
		return fmt.Errorf("failed to seed day: %w", err)
	}

	for _, v := range payload.Vehicles {
		drivers, err := json.Marshal(v.Drivers)
		if err != nil {
			return fmt.Errorf("failed to serialize drivers: %w", err)
		}
		capabilities, err := json.Marshal(v.Capabilities)
		if err != nil {
			return fmt.Errorf("failed to serialize capabilities: %w", err)
		}
		oos := 0
		if v.IsOutOfService {
			oos = 1
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO vehicle (vehicle_id, unit_number, is_out_of_service, display_order, drivers, capabilities) VALUES (?, ?, ?, ?, ?, ?)`,
			v.VehicleID, v.UnitNumber, oos, v.DisplayOrder, string(drivers), string(capabilities)); err != nil {
			return fmt.Errorf("failed to seed vehicle %s: %w", v.VehicleID, err)
		}
	}

	queues := map[models.QueueName][]models.Trip{
		models.QueueIncoming:   payload.IncomingRequests,
		models.QueueUnassigned: payload.UnassignedTrips,
		models.QueueWillCall:   payload.WillCallTrips,
	}
	for queue, trips := range queues {
		for _, trip := range trips {
			data, err := json.Marshal(trip)
			if err != nil {
				return fmt.Errorf("failed to serialize trip %s: %w", trip.TripID, err)
			}
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO trip (trip_id, date_local, queue, data) VALUES (?, ?, ?, ?)`,
				trip.TripID, payload.Day.DateLocal, string(queue), string(data)); err != nil {
				return fmt.Errorf("failed to seed trip %s: %w", trip.TripID, err)
			}
		}
	}

	return tx.Commit()
}
