package provider

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tripboard/internal/models"
)

func seedPayload() models.DayPayload {
	return models.DayPayload{
		Org: models.Organization{OrgID: "org-1", Timezone: "America/Chicago"},
		Day: models.DayDescriptor{
			DateLocal:       "2025-03-01",
			StartTimeLocal:  "2025-03-01T00:00:00",
			SlotMinutes:     15,
			SlotsPerDayView: 96,
		},
		Vehicles: []models.Vehicle{
			{VehicleID: "V1", UnitNumber: "101", DisplayOrder: 1, Drivers: []string{"R. Ortiz"}, Capabilities: []string{"wheelchair"}},
			{VehicleID: "V2", UnitNumber: "102", DisplayOrder: 2, IsOutOfService: true},
		},
		IncomingRequests: []models.Trip{
			{TripID: "T3", PickupTimeLocal: "11:30", PassengerShort: "C. Diaz"},
		},
		UnassignedTrips: []models.Trip{
			{TripID: "T1", PickupTimeLocal: "09:15", PassengerShort: "J. Smith", PickupCity: "Fort Worth"},
		},
		WillCallTrips: []models.Trip{
			{TripID: "T2", PickupTimeLocal: "13:00", PassengerShort: "L. Vance"},
		},
	}
}

func assertPayloadRoundTrip(t *testing.T, got models.DayPayload) {
	t.Helper()
	if got.Org.Timezone != "America/Chicago" {
		t.Errorf("timezone lost in round trip: %q", got.Org.Timezone)
	}
	if got.Day.DateLocal != "2025-03-01" || got.Day.SlotMinutes != 15 {
		t.Errorf("day descriptor lost in round trip: %+v", got.Day)
	}
	if len(got.Vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(got.Vehicles))
	}
	if len(got.IncomingRequests) != 1 || got.IncomingRequests[0].TripID != "T3" {
		t.Errorf("incoming queue lost in round trip: %+v", got.IncomingRequests)
	}
	if len(got.UnassignedTrips) != 1 || got.UnassignedTrips[0].PickupCity != "Fort Worth" {
		t.Errorf("unassigned queue lost in round trip: %+v", got.UnassignedTrips)
	}
	if len(got.WillCallTrips) != 1 || got.WillCallTrips[0].TripID != "T2" {
		t.Errorf("will-call queue lost in round trip: %+v", got.WillCallTrips)
	}
}

func TestJSONProvider_SeedFetchRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := NewJSONProvider(dir)
	defer p.Close()

	if err := p.Seed(seedPayload()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, err := p.FetchDay("")
	if err != nil {
		t.Fatalf("FetchDay failed: %v", err)
	}
	assertPayloadRoundTrip(t, got)

	// A date with no dedicated file falls back to the default day file.
	got, err = p.FetchDay("2025-03-05")
	if err != nil {
		t.Fatalf("FetchDay with fallback failed: %v", err)
	}
	if got.Day.DateLocal != "2025-03-01" {
		t.Errorf("expected the default day payload, got %q", got.Day.DateLocal)
	}
}

func TestJSONProvider_MissingFileError(t *testing.T) {
	p := NewJSONProvider(filepath.Join(t.TempDir(), "nope.json"))

	_, err := p.FetchDay("")
	if err == nil {
		t.Fatal("expected an error for a missing payload file")
	}
	if !strings.Contains(err.Error(), "tripboard seed") {
		t.Errorf("error should point at the seed command, got: %v", err)
	}
}

func TestSQLiteProvider_SeedFetchRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")
	p := NewSQLiteProvider(path)
	defer p.Close()

	if err := p.Seed(seedPayload()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, err := p.FetchDay("2025-03-01")
	if err != nil {
		t.Fatalf("FetchDay failed: %v", err)
	}
	assertPayloadRoundTrip(t, got)

	for _, v := range got.Vehicles {
		if v.VehicleID == "V1" {
			if len(v.Drivers) != 1 || v.Drivers[0] != "R. Ortiz" {
				t.Errorf("drivers lost in round trip: %+v", v.Drivers)
			}
			if len(v.Capabilities) != 1 || v.Capabilities[0] != "wheelchair" {
				t.Errorf("capabilities lost in round trip: %+v", v.Capabilities)
			}
		}
		if v.VehicleID == "V2" && !v.IsOutOfService {
			t.Error("out-of-service flag lost in round trip")
		}
	}
}

func TestSQLiteProvider_FallsBackToDefaultDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")
	p := NewSQLiteProvider(path)
	defer p.Close()

	if err := p.Seed(seedPayload()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	got, err := p.FetchDay("2025-03-05")
	if err != nil {
		t.Fatalf("FetchDay with fallback failed: %v", err)
	}
	if got.Day.DateLocal != "2025-03-01" {
		t.Errorf("expected the default day row, got %q", got.Day.DateLocal)
	}
}

func TestSQLiteProvider_MissingDatabaseError(t *testing.T) {
	p := NewSQLiteProvider(filepath.Join(t.TempDir(), "dispatch.db"))

	_, err := p.FetchDay("")
	if err == nil {
		t.Fatal("expected an error for a missing database")
	}
	if !strings.Contains(err.Error(), "tripboard seed") {
		t.Errorf("error should point at the seed command, got: %v", err)
	}
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("board.json").(*JSONProvider); !ok {
		t.Error("expected a JSON provider for a .json path")
	}
	if _, ok := ForPath("dispatch.db").(*SQLiteProvider); !ok {
		t.Error("expected a SQLite provider for a database path")
	}
}
