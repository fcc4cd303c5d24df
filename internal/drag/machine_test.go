package drag

import (
	"testing"

	"github.com/julianstephens/tripboard/internal/board"
	"github.com/julianstephens/tripboard/internal/models"
)

func testBoard() *board.Partition {
	return board.NewPartition(models.DayPayload{
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
		UnassignedTrips: []models.Trip{
			{TripID: "T1", PickupTimeLocal: "09:15", PassengerShort: "J. Smith"},
		},
		WillCallTrips: []models.Trip{
			{TripID: "T2", PickupTimeLocal: "13:00", PassengerShort: "L. Vance"},
		},
	})
}

func startDrag(m *Machine, b *board.Partition, tripID string) *models.Trip {
	for _, name := range models.AllQueues {
		for _, t := range b.QueueContents(name) {
			if t.TripID == tripID {
				trip := t
				m.Start(StartEvent{Trip: &trip})
				return &trip
			}
		}
	}
	return nil
}

func TestEnd_SnapsOntoVehicle(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)

	if startDrag(m, b, "T1") == nil {
		t.Fatal("fixture trip T1 not found")
	}

	// Raw offset 47px rounds to slot 2 at 60px.
	m.End(EndEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 47, TargetTopPx: 0})

	blocks := b.AssignmentsForVehicle("V1")
	if len(blocks) != 1 {
		t.Fatalf("expected one assignment on V1, got %d", len(blocks))
	}
	if blocks[0].SlotIndex != 2 || blocks[0].TopPx != 60 {
		t.Errorf("expected slot 2 at 60px, got slot %d at %dpx", blocks[0].SlotIndex, blocks[0].TopPx)
	}
	if _, ok := b.Locate("T1"); !ok {
		t.Fatal("T1 disappeared from the board")
	}
	if len(b.QueueContents(models.QueueUnassigned)) != 0 {
		t.Error("T1 left behind in unassigned after the drop")
	}
	if m.Dragging() || m.Preview() != nil {
		t.Error("transient state not cleared after end")
	}
}

func TestEnd_GridToQueueFrontInsert(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)

	trip := startDrag(m, b, "T1")
	m.End(EndEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 60, TargetTopPx: 0})

	// Drag the placed block back off the grid into will-call.
	m.Start(StartEvent{Trip: trip})
	m.End(EndEvent{TargetID: TargetQueueWillCall})

	if len(b.AssignmentsForVehicle("V1")) != 0 {
		t.Error("grid assignment survived the move back to a queue")
	}
	willcall := b.QueueContents(models.QueueWillCall)
	if len(willcall) != 2 {
		t.Fatalf("expected 2 will-call trips, got %d", len(willcall))
	}
	// Raw queue order puts the returned trip at the front; QueueContents
	// sorts by pickup time, so check placement through RawQueue.
	raw := b.RawQueue(models.QueueWillCall)
	if raw[0].TripID != "T1" {
		t.Errorf("expected T1 at the front of will-call, got %s", raw[0].TripID)
	}
}

func TestMove_PreviewOverVehicle(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)
	startDrag(m, b, "T1")

	m.Move(MoveEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 47, TargetTopPx: 0})

	pv := m.Preview()
	if pv == nil {
		t.Fatal("expected a preview over an in-service vehicle")
	}
	if pv.VehicleID != "V1" || pv.TopPx != 60 || pv.HeightPx != 90 {
		t.Errorf("unexpected preview %+v", *pv)
	}
}

func TestMove_NoPreviewOverQueueOrOOS(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)
	startDrag(m, b, "T1")

	m.Move(MoveEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 47, TargetTopPx: 0})
	m.Move(MoveEvent{TargetID: TargetQueueIncoming})
	if m.Preview() != nil {
		t.Error("preview not cleared over a queue target")
	}

	m.Move(MoveEvent{TargetID: VehicleTarget("V2"), PointerTopPx: 47, TargetTopPx: 0})
	if m.Preview() != nil {
		t.Error("preview shown over an out-of-service vehicle")
	}

	m.Move(MoveEvent{TargetID: "veh-", PointerTopPx: 47, TargetTopPx: 0})
	if m.Preview() != nil {
		t.Error("preview shown for an unresolved target")
	}
}

func TestEnd_OutOfServiceDropRejected(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)
	startDrag(m, b, "T1")

	m.End(EndEvent{TargetID: VehicleTarget("V2"), PointerTopPx: 47, TargetTopPx: 0})

	if loc, _ := b.Locate("T1"); loc != "unassigned" {
		t.Errorf("expected T1 back in unassigned, got %q", loc)
	}
	if len(b.AssignmentsForVehicle("V2")) != 0 {
		t.Error("out-of-service vehicle gained an assignment")
	}
	if m.Dragging() || m.Preview() != nil {
		t.Error("transient state not cleared after rejected drop")
	}
}

func TestEnd_ClampsToGridBottom(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)
	startDrag(m, b, "T1")

	m.End(EndEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 99999, TargetTopPx: 0})

	blocks := b.AssignmentsForVehicle("V1")
	if len(blocks) != 1 {
		t.Fatalf("expected one assignment, got %d", len(blocks))
	}
	if blocks[0].TopPx+blocks[0].HeightPx > 96*30 {
		t.Errorf("assignment extends past grid bottom: top %d", blocks[0].TopPx)
	}
}

func TestCancel_LeavesBoardUnchanged(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)

	before, _ := b.Fingerprint()

	startDrag(m, b, "T1")
	m.Move(MoveEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 200, TargetTopPx: 0})
	m.Cancel(CancelEvent{})

	after, _ := b.Fingerprint()
	if before != after {
		t.Error("cancel changed the board")
	}
	if m.Dragging() || m.Preview() != nil {
		t.Error("transient state survived cancel")
	}
}

func TestEnd_WithoutStartIsNoop(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)

	before, _ := b.Fingerprint()
	m.End(EndEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 47, TargetTopPx: 0})

	after, _ := b.Fingerprint()
	if before != after {
		t.Error("end without an active drag changed the board")
	}
}

func TestMove_WithoutStartIsNoop(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)

	m.Move(MoveEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 47, TargetTopPx: 0})
	if m.Preview() != nil {
		t.Error("preview produced without an active drag")
	}
}

func TestRebind_DiscardsInFlightGesture(t *testing.T) {
	b := testBoard()
	m := NewMachine(b)
	startDrag(m, b, "T1")
	m.Move(MoveEvent{TargetID: VehicleTarget("V1"), PointerTopPx: 47, TargetTopPx: 0})

	m.Rebind(testBoard())

	if m.Dragging() || m.Preview() != nil {
		t.Error("rebind kept in-flight gesture state")
	}
}
