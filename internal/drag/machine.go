// Package drag is the gesture state machine for the board. It consumes a
// closed set of lifecycle events from whatever host surface reports
// gestures, keeps the live snapped preview while a card hovers a vehicle
// column, and commits placements through the board partition on release.
package drag

import (
	"strings"

	"github.com/julianstephens/tripboard/internal/board"
	"github.com/julianstephens/tripboard/internal/geometry"
	"github.com/julianstephens/tripboard/internal/models"
)

// Target identifier namespace used by gesture hosts: queues are fixed names,
// vehicle columns are "veh-" + vehicle id.
const (
	TargetQueueIncoming   = "queue-incoming"
	TargetQueueUnassigned = "queue-unassigned"
	TargetQueueWillCall   = "queue-willcall"
	vehicleTargetPrefix   = "veh-"
)

func VehicleTarget(vehicleID string) string { return vehicleTargetPrefix + vehicleID }

func queueFromTarget(targetID string) (models.QueueName, bool) {
	switch targetID {
	case TargetQueueIncoming:
		return models.QueueIncoming, true
	case TargetQueueUnassigned:
		return models.QueueUnassigned, true
	case TargetQueueWillCall:
		return models.QueueWillCall, true
	}
	return "", false
}

func vehicleFromTarget(targetID string) (string, bool) {
	id, ok := strings.CutPrefix(targetID, vehicleTargetPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Preview is the ephemeral snapped drop indicator shown while a card hovers
// an in-service vehicle column.
type Preview struct {
	VehicleID string
	TopPx     int
	HeightPx  int
}

// StartEvent carries the dragged trip. A nil trip is tolerated and makes the
// whole gesture a no-op.
type StartEvent struct {
	Trip *models.Trip
}

// MoveEvent and EndEvent carry the hovered target and the pointer geometry:
// the pointer's top edge and the hovered column's top edge, both in the
// host's pixel space.
type MoveEvent struct {
	TargetID     string
	PointerTopPx float64
	TargetTopPx  float64
}

type EndEvent struct {
	TargetID     string
	PointerTopPx float64
	TargetTopPx  float64
}

type CancelEvent struct{}

// Machine is the drag state machine for one board partition. Idle until a
// start event, back to idle on end or cancel.
type Machine struct {
	day     models.DayDescriptor
	board   *board.Partition
	active  *models.Trip
	preview *Preview
}

func NewMachine(b *board.Partition) *Machine {
	return &Machine{day: b.Day(), board: b}
}

// Rebind points the machine at a different day's partition, discarding any
// in-flight gesture.
func (m *Machine) Rebind(b *board.Partition) {
	m.day = b.Day()
	m.board = b
	m.active = nil
	m.preview = nil
}

func (m *Machine) Active() *models.Trip { return m.active }
func (m *Machine) Preview() *Preview    { return m.preview }
func (m *Machine) Dragging() bool       { return m.active != nil }

func (m *Machine) Start(ev StartEvent) {
	m.active = ev.Trip
}

// Move recomputes the preview for the hovered target. Queues, out-of-service
// columns and unresolved targets show no preview.
func (m *Machine) Move(ev MoveEvent) {
	if m.active == nil {
		return
	}
	m.preview = m.previewFor(ev.TargetID, ev.PointerTopPx, ev.TargetTopPx)
}

// End commits the gesture: a queue target moves the trip to that queue, an
// in-service vehicle column assigns it at the snapped slot, anything else
// changes nothing. Transient state is cleared on every path out.
func (m *Machine) End(ev EndEvent) {
	defer func() {
		m.preview = nil
		m.active = nil
	}()

	trip := m.active
	if trip == nil {
		return
	}

	if q, ok := queueFromTarget(ev.TargetID); ok {
		m.board.MoveTripToQueue(*trip, q)
		return
	}

	vehicleID, ok := vehicleFromTarget(ev.TargetID)
	if !ok {
		return
	}

	// End geometry may differ slightly from the last move, so snap again.
	raw := ev.PointerTopPx - ev.TargetTopPx
	slotIndex, _ := geometry.Snap(raw, geometry.GridHeight(m.day.SlotsPerDayView), geometry.TripBlockPx)

	// The partition rejects out-of-service and unknown vehicles itself.
	m.board.AssignTripToGrid(*trip, vehicleID, slotIndex, geometry.TripBlockPx)
}

func (m *Machine) Cancel(CancelEvent) {
	m.preview = nil
	m.active = nil
}

func (m *Machine) previewFor(targetID string, pointerTopPx, targetTopPx float64) *Preview {
	if _, ok := queueFromTarget(targetID); ok {
		return nil
	}
	vehicleID, ok := vehicleFromTarget(targetID)
	if !ok {
		return nil
	}
	v, ok := m.board.Vehicle(vehicleID)
	if !ok || v.IsOutOfService {
		return nil
	}

	raw := pointerTopPx - targetTopPx
	_, topPx := geometry.Snap(raw, geometry.GridHeight(m.day.SlotsPerDayView), geometry.TripBlockPx)
	return &Preview{VehicleID: vehicleID, TopPx: topPx, HeightPx: geometry.TripBlockPx}
}
