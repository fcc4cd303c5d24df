package board

import (
	"testing"

	"github.com/julianstephens/tripboard/internal/models"
)

func testPayload() models.DayPayload {
	return models.DayPayload{
		Org: models.Organization{OrgID: "org-1", Timezone: "America/Chicago"},
		Day: models.DayDescriptor{
			DateLocal:       "2025-03-01",
			StartTimeLocal:  "2025-03-01T00:00:00",
			SlotMinutes:     15,
			SlotsPerDayView: 96,
		},
		Vehicles: []models.Vehicle{
			{VehicleID: "V1", UnitNumber: "101", DisplayOrder: 1},
			{VehicleID: "V2", UnitNumber: "102", DisplayOrder: 2, IsOutOfService: true},
		},
		IncomingRequests: []models.Trip{
			{TripID: "T3", PickupTimeLocal: "11:30", PassengerShort: "C. Diaz"},
		},
		UnassignedTrips: []models.Trip{
			{TripID: "T1", PickupTimeLocal: "09:15", PassengerShort: "J. Smith"},
			{TripID: "T2", PickupTimeLocal: "08:00", PassengerShort: "L. Vance"},
		},
	}
}

// assertAtMostOnePlace checks the board invariant: every trip id lives in at
// most one queue or grid assignment.
func assertAtMostOnePlace(t *testing.T, p *Partition, tripIDs ...string) {
	t.Helper()
	for _, id := range tripIDs {
		count := 0
		for _, name := range models.AllQueues {
			for _, trip := range p.QueueContents(name) {
				if trip.TripID == id {
					count++
				}
			}
		}
		for _, b := range p.Assignments() {
			if b.Trip.TripID == id {
				count++
			}
		}
		if count > 1 {
			t.Errorf("trip %s appears in %d places", id, count)
		}
	}
}

func TestMoveTripToQueue_Idempotent(t *testing.T) {
	p := NewPartition(testPayload())
	trip := models.Trip{TripID: "T1", PickupTimeLocal: "09:15"}

	p.MoveTripToQueue(trip, models.QueueWillCall)
	p.MoveTripToQueue(trip, models.QueueWillCall)

	if got := len(p.QueueContents(models.QueueWillCall)); got != 1 {
		t.Errorf("expected exactly one willcall entry, got %d", got)
	}
	if loc, _ := p.Locate("T1"); loc != "willcall" {
		t.Errorf("expected T1 in willcall, got %q", loc)
	}
	assertAtMostOnePlace(t, p, "T1", "T2", "T3")
}

func TestMoveTripToQueue_RejectsUnknownQueue(t *testing.T) {
	p := NewPartition(testPayload())
	before, _ := p.Fingerprint()

	if p.MoveTripToQueue(models.Trip{TripID: "T1"}, "nope") {
		t.Fatal("expected unknown queue to be rejected")
	}

	after, _ := p.Fingerprint()
	if before != after {
		t.Error("rejected move changed board state")
	}
}

func TestAssignTripToGrid_RemovesFromQueues(t *testing.T) {
	p := NewPartition(testPayload())
	trip := models.Trip{TripID: "T1", PickupTimeLocal: "09:15"}

	if !p.AssignTripToGrid(trip, "V1", 2, 90) {
		t.Fatal("assignment to in-service vehicle was rejected")
	}

	if loc, _ := p.Locate("T1"); loc != "grid" {
		t.Errorf("expected T1 on grid, got %q", loc)
	}

	blocks := p.AssignmentsForVehicle("V1")
	if len(blocks) != 1 {
		t.Fatalf("expected one assignment on V1, got %d", len(blocks))
	}
	if blocks[0].SlotIndex != 2 || blocks[0].TopPx != 60 {
		t.Errorf("expected slot 2 at 60px, got slot %d at %dpx", blocks[0].SlotIndex, blocks[0].TopPx)
	}
	assertAtMostOnePlace(t, p, "T1", "T2", "T3")
}

func TestAssignTripToGrid_UpdatesInPlace(t *testing.T) {
	p := NewPartition(testPayload())
	trip := models.Trip{TripID: "T1", PickupTimeLocal: "09:15"}

	p.AssignTripToGrid(trip, "V1", 2, 90)
	p.AssignTripToGrid(trip, "V1", 5, 90)

	blocks := p.AssignmentsForVehicle("V1")
	if len(blocks) != 1 {
		t.Fatalf("expected the assignment to be replaced, got %d blocks", len(blocks))
	}
	if blocks[0].SlotIndex != 5 || blocks[0].TopPx != 150 {
		t.Errorf("expected slot 5 at 150px, got slot %d at %dpx", blocks[0].SlotIndex, blocks[0].TopPx)
	}
}

func TestAssignTripToGrid_RejectsOutOfService(t *testing.T) {
	p := NewPartition(testPayload())
	trip := models.Trip{TripID: "T1", PickupTimeLocal: "09:15"}

	if p.AssignTripToGrid(trip, "V2", 2, 90) {
		t.Fatal("expected assignment onto out-of-service vehicle to be rejected")
	}

	if loc, _ := p.Locate("T1"); loc != "unassigned" {
		t.Errorf("expected T1 to stay in unassigned, got %q", loc)
	}
	if len(p.AssignmentsForVehicle("V2")) != 0 {
		t.Error("out-of-service vehicle gained an assignment")
	}
}

func TestAssignTripToGrid_RejectsUnknownVehicle(t *testing.T) {
	p := NewPartition(testPayload())

	if p.AssignTripToGrid(models.Trip{TripID: "T1"}, "V9", 2, 90) {
		t.Fatal("expected assignment onto unknown vehicle to be rejected")
	}
	if loc, _ := p.Locate("T1"); loc != "unassigned" {
		t.Errorf("expected T1 to stay in unassigned, got %q", loc)
	}
}

func TestMoveTripToQueue_FromGrid(t *testing.T) {
	p := NewPartition(testPayload())
	trip := models.Trip{TripID: "T1", PickupTimeLocal: "09:15"}

	p.AssignTripToGrid(trip, "V1", 2, 90)
	p.MoveTripToQueue(trip, models.QueueWillCall)

	if len(p.AssignmentsForVehicle("V1")) != 0 {
		t.Error("expected grid assignment to be removed")
	}
	if loc, _ := p.Locate("T1"); loc != "willcall" {
		t.Errorf("expected T1 in willcall, got %q", loc)
	}
	assertAtMostOnePlace(t, p, "T1", "T2", "T3")
}

func TestQueueContents_SortedByPickup(t *testing.T) {
	p := NewPartition(testPayload())

	trips := p.QueueContents(models.QueueUnassigned)
	if len(trips) != 2 {
		t.Fatalf("expected 2 unassigned trips, got %d", len(trips))
	}
	if trips[0].TripID != "T2" || trips[1].TripID != "T1" {
		t.Errorf("expected pickup-ascending order T2,T1, got %s,%s", trips[0].TripID, trips[1].TripID)
	}
}

func TestVehicles_GridOrder(t *testing.T) {
	payload := testPayload()
	payload.Vehicles = []models.Vehicle{
		{VehicleID: "V2", UnitNumber: "102", DisplayOrder: 1, IsOutOfService: true},
		{VehicleID: "V1", UnitNumber: "101", DisplayOrder: 2},
	}
	p := NewPartition(payload)

	vehicles := p.Vehicles()
	if vehicles[0].VehicleID != "V1" {
		t.Errorf("expected in-service vehicle first, got %s", vehicles[0].VehicleID)
	}
}

func TestFingerprint_TracksEdits(t *testing.T) {
	p := NewPartition(testPayload())

	before, err := p.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	p.MoveTripToQueue(models.Trip{TripID: "T1", PickupTimeLocal: "09:15"}, models.QueueWillCall)

	after, err := p.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if before == after {
		t.Error("expected fingerprint to change after an edit")
	}
}
