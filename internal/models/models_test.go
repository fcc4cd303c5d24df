package models

import "testing"

func TestSortVehiclesForGrid(t *testing.T) {
	vehicles := []Vehicle{
		{VehicleID: "V3", DisplayOrder: 1, IsOutOfService: true},
		{VehicleID: "V2", DisplayOrder: 3},
		{VehicleID: "V1", DisplayOrder: 2},
	}

	sorted := SortVehiclesForGrid(vehicles)

	want := []string{"V1", "V2", "V3"}
	for i, id := range want {
		if sorted[i].VehicleID != id {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].VehicleID, id)
		}
	}

	// Input order untouched.
	if vehicles[0].VehicleID != "V3" {
		t.Error("SortVehiclesForGrid mutated its input")
	}
}

func TestQueueNameValid(t *testing.T) {
	for _, name := range AllQueues {
		if !name.Valid() {
			t.Errorf("expected %q to be valid", name)
		}
	}
	if QueueName("grid").Valid() {
		t.Error("expected non-queue name to be invalid")
	}
}
